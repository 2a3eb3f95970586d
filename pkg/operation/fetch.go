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
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/retrofit/pkg/remote"
	"github.com/walteh/retrofit/pkg/state"
	"github.com/walteh/retrofit/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// fetchConcurrency bounds parallel downloads against the provider
const fetchConcurrency = 4

// 📥 NewFetchOperation creates the upstream snapshot operation
func NewFetchOperation(opts Options) (Operation, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Provider == nil {
		return nil, errors.Errorf("provider is required")
	}
	return &fetchOperation{
		baseOperation: newBaseOperation(opts),
		provider:      opts.Provider,
	}, nil
}

// 📥 fetchOperation downloads a fresh upstream snapshot
type fetchOperation struct {
	baseOperation
	provider remote.Provider
}

// 📛 Name returns the operation name
func (op *fetchOperation) Name() string {
	return "fetch"
}

// 🏃 Execute downloads the upstream files into the source directory.
// Downloads run in parallel but a failed file never aborts the rest:
// outcomes land in the tracker and failures surface as ErrBatchFailed.
func (op *fetchOperation) Execute(ctx context.Context) error {
	if op.Config.Remote == nil {
		return errors.Errorf("remote is not configured")
	}

	args := remote.Args{
		Repo: op.Config.Remote.Repo,
		Ref:  op.Config.Remote.Ref,
		Path: op.Config.Remote.Path,
	}

	commit, err := op.provider.GetCommitHash(ctx, args)
	if err != nil {
		return errors.Errorf("getting commit hash: %w", err)
	}

	listed, err := op.provider.ListFiles(ctx, args)
	if err != nil {
		return errors.Errorf("listing files: %w", err)
	}

	var names []string
	for _, name := range listed {
		if strings.HasSuffix(name, op.Config.Extension) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	zerolog.Ctx(ctx).Debug().
		Str("repo", args.Repo).
		Str("ref", args.Ref).
		Str("commit", commit).
		Int("files", len(names)).
		Msg("fetching upstream snapshot")

	src := status.NewWriter(op.Config.Source)
	if err := src.EnsureDir(ctx); err != nil {
		return errors.Errorf("creating source directory: %w", err)
	}

	var eg errgroup.Group
	eg.SetLimit(fetchConcurrency)
	for _, name := range names {
		name := name
		eg.Go(func() error {
			op.Tracker.Record(ctx, op.fetchFile(ctx, src, args, commit, name))
			return nil
		})
	}
	// Failures are collected in the tracker, not returned.
	_ = eg.Wait()

	rep := op.Tracker.Report()
	if err := op.updateLock(ctx, args, commit); err != nil {
		return errors.Errorf("updating lock file: %w", err)
	}

	op.Users.LogStateChange(fmt.Sprintf("snapshot of %d files at %s", rep.Written(), shortHash(commit)))

	if !rep.OK() {
		return errors.Errorf("%d of %d files failed: %w", len(rep.Failed()), len(rep.Results), ErrBatchFailed)
	}

	return nil
}

// 📄 fetchFile downloads one upstream file through the guarded writer
func (op *fetchOperation) fetchFile(ctx context.Context, src *status.Writer, args remote.Args, commit, name string) status.FileResult {
	zerolog.Ctx(ctx).Trace().
		Str("file", name).
		Str("permalink", op.provider.GetPermalink(args, commit, name)).
		Msg("downloading")

	rc, err := op.provider.GetFile(ctx, args, name)
	if err != nil {
		return status.FileResult{Name: name, Outcome: status.OutcomeFailedIOError, Err: err}
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return status.FileResult{Name: name, Outcome: status.OutcomeFailedIOError, Err: err}
	}

	if err := src.WriteFileGuarded(ctx, name, content); err != nil {
		outcome := status.OutcomeFailedIOError
		if errors.Is(err, status.ErrEmptyOutput) {
			outcome = status.OutcomeFailedEmptyOutput
		}
		return status.FileResult{Name: name, Outcome: outcome, Err: err}
	}

	return status.FileResult{
		Name:     name,
		Outcome:  status.OutcomeWritten,
		Checksum: status.Checksum(content),
	}
}

// 🔒 updateLock records where the snapshot came from
func (op *fetchOperation) updateLock(ctx context.Context, args remote.Args, commit string) error {
	st, err := state.Load(ctx, op.Config.Lock)
	if err != nil {
		return err
	}

	st.UpstreamRef = args.Ref
	st.UpstreamCommit = commit
	st.LastFetched = time.Now().UTC()

	if err := st.Save(ctx, op.Config.Lock); err != nil {
		return err
	}

	op.Users.LogLockUpdate(op.Config.Lock)

	return nil
}

// shortHash trims a commit hash for display
func shortHash(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}
