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
	"os"
	"sort"

	"github.com/rs/zerolog"
	"github.com/walteh/retrofit/pkg/log"
	"github.com/walteh/retrofit/pkg/state"
	"github.com/walteh/retrofit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🧹 NewCleanOperation creates the destination cleanup operation
func NewCleanOperation(opts Options) (Operation, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &cleanOperation{baseOperation: newBaseOperation(opts)}, nil
}

// 🧹 cleanOperation removes generated files from the destination
type cleanOperation struct {
	baseOperation
}

// 📛 Name returns the operation name
func (op *cleanOperation) Name() string {
	return "clean"
}

// 🏃 Execute deletes previously generated files from the destination and
// resets the lock. Excluded names are hand-maintained and never touched,
// and the source tree is left alone entirely.
func (op *cleanOperation) Execute(ctx context.Context) error {
	if err := checkDir(op.Config.Destination, "destination"); err != nil {
		return err
	}

	st, err := state.Load(ctx, op.Config.Lock)
	if err != nil {
		return err
	}

	excluded := make(map[string]bool, len(op.Config.Exclude))
	for _, name := range op.Config.Exclude {
		excluded[name] = true
	}

	// Union of the current candidates and everything the lock says was
	// written: lock entries survive source-side deletions, so stale
	// generated files still get cleaned up.
	names := map[string]bool{}
	sel, err := NewSelector(op.Config).Select(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("source listing unavailable, cleaning from lock only")
	} else {
		for _, name := range sel.Candidates {
			names[name] = true
		}
	}
	for _, rec := range st.Files {
		if rec.Outcome == status.OutcomeWritten.String() {
			names[rec.Name] = true
		}
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		if excluded[name] {
			continue
		}
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	dst := status.NewWriter(op.Config.Destination)
	removed, failed := 0, 0
	for _, name := range sorted {
		gone, err := op.cleanFile(ctx, dst, name)
		if err != nil {
			failed++
			op.Users.LogFileChange(log.FileChange{
				Type:  log.FileError,
				Path:  name,
				Error: err,
			})
			continue
		}
		if gone {
			removed++
		}
	}

	if err := op.removeLock(ctx); err != nil {
		return err
	}

	op.Users.LogStateChange(fmt.Sprintf("removed %d generated files", removed))

	if failed > 0 {
		return errors.Errorf("%d of %d files failed: %w", failed, len(sorted), ErrBatchFailed)
	}

	return nil
}

// 🗑️ cleanFile removes one generated file if it is present
func (op *cleanOperation) cleanFile(ctx context.Context, dst *status.Writer, name string) (bool, error) {
	exists, err := dst.FileExists(ctx, name)
	if err != nil {
		return false, err
	}
	if !exists {
		zerolog.Ctx(ctx).Debug().Str("file", name).Msg("already gone")
		return false, nil
	}

	if err := dst.DeleteFile(ctx, name); err != nil {
		return false, err
	}

	op.Users.LogFileChange(log.FileChange{
		Type: log.FileDeleted,
		Path: name,
	})

	return true, nil
}

// 🔓 removeLock deletes the lock file if it exists
func (op *cleanOperation) removeLock(ctx context.Context) error {
	if err := os.Remove(op.Config.Lock); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Errorf("removing lock file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", op.Config.Lock).Msg("lock file removed")

	return nil
}
