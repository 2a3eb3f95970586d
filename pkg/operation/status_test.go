package operation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_PreviewsWithoutWriting(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	writeSource(t, env, "New.java", "package jdk.internal.util.json;\n")
	writeSource(t, env, "Mod.java", "package jdk.internal.util.json;\n")
	writeDestination(t, env, "Mod.java", "something else\n")
	writeSource(t, env, "Same.java", "package jdk.internal.util.json;\n")
	writeDestination(t, env, "Same.java", "package jdk.sandbox.internal.util.json;\n")
	writeSource(t, env, "Broken.java", "")
	writeSource(t, env, "Utils.java", "package jdk.internal.util.json;\n")

	op, err := NewStatusOperation(env.opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	assert.Contains(t, env.users.String(), "1 new, 1 modified, 1 unchanged, 1 would fail")
	assert.Contains(t, env.users.String(), "Skipped Utils.java (excluded)")

	// Dry run: the destination tree is untouched.
	assert.True(t, destinationMissing(t, env, "New.java"))
	assert.Equal(t, "something else\n", readDestination(t, env, "Mod.java"))

	preview := env.console.String()
	assert.Contains(t, preview, "New.java")
	assert.Contains(t, preview, "would-fail")
}

func TestStatus_WarnsOnDrift(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	writeSource(t, env, "Alpha.java", "package jdk.internal.util.json;\n")

	// A full transform records checksums in the lock.
	transform, err := NewTransformOperation(env.opts)
	require.NoError(t, err)
	require.NoError(t, transform.Execute(ctx))

	// Someone edits the generated file by hand.
	writeDestination(t, env, "Alpha.java", "edited by hand\n")

	op, err := NewStatusOperation(env.freshOpts(t))
	require.NoError(t, err)
	require.NoError(t, op.Execute(testContext(t)))

	assert.Contains(t, env.users.String(), "Alpha.java drifted since last run")
}

func TestStatus_WarnsOnProfileChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	writeSource(t, env, "Alpha.java", "package jdk.internal.util.json;\n")

	transform, err := NewTransformOperation(env.opts)
	require.NoError(t, err)
	require.NoError(t, transform.Execute(ctx))

	// The profile gains an exclusion after the run was recorded.
	env.cfg.Exclude = append(env.cfg.Exclude, "Alpha.java")

	op, err := NewStatusOperation(env.freshOpts(t))
	require.NoError(t, err)
	require.NoError(t, op.Execute(testContext(t)))

	assert.Contains(t, env.users.String(), "profile changed since last run")
}

func TestStatus_MissingSource(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.Source = "/nonexistent/source"

	op, err := NewStatusOperation(env.opts)
	require.NoError(t, err)

	err = op.Execute(testContext(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source directory")
	assert.Empty(t, env.console.String(), "no preview may be printed")
}
