// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/retrofit/pkg/config"
	"github.com/walteh/retrofit/pkg/remote"
	"github.com/walteh/retrofit/pkg/state"
	"github.com/walteh/retrofit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// fakeProvider serves an in-memory file set as a remote.Provider.
// Downloads run concurrently, so access is guarded.
type fakeProvider struct {
	mu     sync.Mutex
	files  map[string]string
	broken map[string]error
	commit string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) ListFiles(ctx context.Context, args remote.Args) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	names := make([]string, 0, len(f.files))
	for name := range f.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeProvider) GetFile(ctx context.Context, args remote.Args, name string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.broken[name]; err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(f.files[name])), nil
}

func (f *fakeProvider) GetCommitHash(ctx context.Context, args remote.Args) (string, error) {
	return f.commit, nil
}

func (f *fakeProvider) GetPermalink(args remote.Args, commitHash string, name string) string {
	return "https://example.com/" + commitHash + "/" + name
}

func fetchEnv(t *testing.T) *testEnv {
	t.Helper()

	env := newTestEnv(t)
	env.cfg.Remote = &config.Remote{
		Provider: "fake",
		Repo:     "github.com/openjdk/jdk-sandbox",
		Ref:      "json",
		Path:     "src/java.base/share/classes/jdk/internal/util/json",
	}
	return env
}

func TestFetch_DownloadsSnapshot(t *testing.T) {
	env := fetchEnv(t)
	ctx := testContext(t)

	opts := env.opts
	opts.Provider = &fakeProvider{
		commit: "cafebabe1234567890",
		files: map[string]string{
			"JsonParser.java": "parser\n",
			"JsonValue.java":  "value\n",
			"README.md":       "not a candidate\n",
		},
	}

	op, err := NewFetchOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	content, err := os.ReadFile(filepath.Join(env.cfg.Source, "JsonParser.java"))
	require.NoError(t, err)
	assert.Equal(t, "parser\n", string(content))

	_, err = os.Stat(filepath.Join(env.cfg.Source, "README.md"))
	assert.True(t, os.IsNotExist(err), "extension filter applies to downloads")

	assert.Equal(t, 2, env.tracker.Report().Written())
	assert.Contains(t, env.users.String(), "snapshot of 2 files at cafebabe1234")

	st, err := state.Load(ctx, env.cfg.Lock)
	require.NoError(t, err)
	assert.Equal(t, "cafebabe1234567890", st.UpstreamCommit)
	assert.Equal(t, "json", st.UpstreamRef)
	assert.False(t, st.LastFetched.IsZero())
}

func TestFetch_IsolatesFailures(t *testing.T) {
	env := fetchEnv(t)
	ctx := testContext(t)

	opts := env.opts
	opts.Provider = &fakeProvider{
		commit: "deadbeef",
		files: map[string]string{
			"Good.java": "good\n",
			"Bad.java":  "never served\n",
		},
		broken: map[string]error{
			"Bad.java": errors.New("rate limited"),
		},
	}

	op, err := NewFetchOperation(opts)
	require.NoError(t, err)

	err = op.Execute(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBatchFailed))

	// The good file still landed.
	content, err := os.ReadFile(filepath.Join(env.cfg.Source, "Good.java"))
	require.NoError(t, err)
	assert.Equal(t, "good\n", string(content))

	rep := env.tracker.Report()
	assert.Equal(t, 1, rep.Written())
	require.Len(t, rep.Failed(), 1)
	assert.Equal(t, "Bad.java", rep.Failed()[0].Name)
	assert.Equal(t, status.OutcomeFailedIOError, rep.Failed()[0].Outcome)
}

func TestFetch_RefusesEmptyDownload(t *testing.T) {
	env := fetchEnv(t)
	ctx := testContext(t)

	opts := env.opts
	opts.Provider = &fakeProvider{
		commit: "deadbeef",
		files: map[string]string{
			"Empty.java": "",
		},
	}

	op, err := NewFetchOperation(opts)
	require.NoError(t, err)

	err = op.Execute(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBatchFailed))

	rep := env.tracker.Report()
	require.Len(t, rep.Failed(), 1)
	assert.Equal(t, status.OutcomeFailedEmptyOutput, rep.Failed()[0].Outcome)

	_, err = os.Stat(filepath.Join(env.cfg.Source, "Empty.java"))
	assert.True(t, os.IsNotExist(err))
}

func TestFetch_RequiresProvider(t *testing.T) {
	env := fetchEnv(t)

	_, err := NewFetchOperation(env.opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider is required")
}

func TestFetch_RequiresRemote(t *testing.T) {
	env := newTestEnv(t)

	opts := env.opts
	opts.Provider = &fakeProvider{commit: "deadbeef"}

	op, err := NewFetchOperation(opts)
	require.NoError(t, err)

	err = op.Execute(testContext(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote is not configured")
}
