package text

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backportOptions() CatalogueOptions {
	return CatalogueOptions{
		OldPackage:      "jdk.internal.util.json",
		NewPackage:      "jdk.sandbox.internal.util.json",
		OldAPIRoot:      "java.util.json",
		NewAPIRoot:      "jdk.sandbox.java.util.json",
		MarkerNames:     []string{"ValueBased", "StableValue"},
		MarkerPrefixes:  []string{"jdk.internal."},
		MarkerImport:    "jdk.internal.ValueBased",
		MarkerInterface: "JsonValueImpl",
	}
}

const upstreamSample = `/*
 * Copyright (c) 2025, Oracle and/or its affiliates.
 */
package jdk.internal.util.json;

import java.util.json.JsonNumber;
import java.util.json.JsonValue;
import jdk.internal.ValueBased;
import jdk.internal.util.json.JsonValueImpl;

@ValueBased
final class JsonNumberImpl implements JsonNumber, JsonValueImpl {

    private final char[] doc;

    @Override
    public String toString() {
        try {
            return Double.toString(num);
        } catch (NumberFormatException _) {
            return "0";
        }
    }

    String kind() {
        return switch (value) {
            case Integer _ -> "int";
            case String s -> s;
            default -> "?";
        };
    }
}
`

const backportedSample = `/*
 * Copyright (c) 2025, Oracle and/or its affiliates.
 */
package jdk.sandbox.internal.util.json;

import jdk.sandbox.java.util.json.JsonNumber;
import jdk.sandbox.java.util.json.JsonValue;
final class JsonNumberImpl implements JsonNumber {

    private final char[] doc;

    @Override
    public String toString() {
        try {
            return Double.toString(num);
        } catch (NumberFormatException e) {
            return "0";
        }
    }

    String kind() {
        return switch (value) {
            case Integer v -> "int";
            case String s -> s;
            default -> "?";
        };
    }
}
`

func TestPipelineRun_Backport(t *testing.T) {
	ctx := context.Background()
	pipeline := NewPipeline(Catalogue(backportOptions())...)

	result := pipeline.Run(ctx, upstreamSample)

	assert.Equal(t, backportedSample, result.ModifiedContent)
	assert.True(t, result.WasModified)
	assert.Equal(t, upstreamSample, result.OriginalContent)
	assert.Equal(t, []string{
		"package-relocation",
		"import-remap",
		"annotation-strip",
		"marker-import-strip",
		"interface-list-edit",
		"interface-import-strip",
		"catch-binder",
		"case-binder",
	}, result.AppliedRules)
}

func TestPipelineRun_Idempotent(t *testing.T) {
	ctx := context.Background()
	pipeline := NewPipeline(Catalogue(backportOptions())...)

	first := pipeline.Run(ctx, upstreamSample)
	second := pipeline.Run(ctx, first.ModifiedContent)

	assert.Equal(t, first.ModifiedContent, second.ModifiedContent,
		"running the pipeline on its own output must change nothing")
	assert.False(t, second.WasModified)
	assert.Empty(t, second.AppliedRules)
}

func TestPipelineRun_NoMatch(t *testing.T) {
	ctx := context.Background()
	pipeline := NewPipeline(Catalogue(backportOptions())...)

	content := "package something.else;\n\nclass Unrelated {\n}\n"
	result := pipeline.Run(ctx, content)

	assert.Equal(t, content, result.ModifiedContent)
	assert.False(t, result.WasModified)
	assert.Empty(t, result.AppliedRules)
}

func TestPipelineRun_EmptyContent(t *testing.T) {
	ctx := context.Background()
	pipeline := NewPipeline(Catalogue(backportOptions())...)

	result := pipeline.Run(ctx, "")

	assert.Equal(t, "", result.ModifiedContent)
	assert.False(t, result.WasModified)
}

func TestPipelineRuleNames(t *testing.T) {
	pipeline := NewPipeline(CatchBinder(), CaseBinder())
	require.Equal(t, []string{"catch-binder", "case-binder"}, pipeline.RuleNames())
}

func TestTemplateEscape(t *testing.T) {
	// Replacement templates treat $ as a group reference, so literal
	// dollars in config values have to be doubled.
	rule := PackageRelocation("a.b", "a.b.Inner$Thing")
	got := rule.Apply("package a.b;\n")
	assert.Equal(t, "package a.b.Inner$Thing;\n", got)
}
