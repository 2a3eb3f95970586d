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
	"time"

	"github.com/walteh/retrofit/pkg/state"
	"github.com/walteh/retrofit/pkg/status"
	"github.com/walteh/retrofit/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔄 NewTransformOperation creates the batch rewrite operation
func NewTransformOperation(opts Options) (Operation, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &transformOperation{baseOperation: newBaseOperation(opts)}, nil
}

// 🔄 transformOperation rewrites the source snapshot into the destination
type transformOperation struct {
	baseOperation
}

// 📛 Name returns the operation name
func (op *transformOperation) Name() string {
	return "transform"
}

// 🏃 Execute runs every candidate through the pipeline and the guarded
// writer. A failed file never stops the batch: each outcome lands in
// the tracker and failures surface once at the end as ErrBatchFailed.
func (op *transformOperation) Execute(ctx context.Context) error {
	if err := checkDir(op.Config.Source, "source"); err != nil {
		return err
	}
	if err := checkDir(op.Config.Destination, "destination"); err != nil {
		return err
	}

	sel, err := NewSelector(op.Config).Select(ctx)
	if err != nil {
		return err
	}

	for _, name := range sel.Excluded {
		op.Tracker.Record(ctx, status.FileResult{
			Name:    name,
			Outcome: status.OutcomeSkippedExcluded,
		})
	}

	pipe := op.pipeline()
	src := status.NewWriter(op.Config.Source)
	dst := status.NewWriter(op.Config.Destination)

	for _, name := range sel.Candidates {
		op.Tracker.Record(ctx, op.processFile(ctx, pipe, src, dst, name))
	}

	rep := op.Tracker.Report()
	if err := op.updateLock(ctx, rep); err != nil {
		return errors.Errorf("updating lock file: %w", err)
	}

	op.Tracker.Summary(ctx)

	if !rep.OK() {
		return errors.Errorf("%d of %d files failed: %w", len(rep.Failed()), len(rep.Results), ErrBatchFailed)
	}

	return nil
}

// 📄 processFile rewrites one candidate into the destination
func (op *transformOperation) processFile(ctx context.Context, pipe *text.Pipeline, src, dst *status.Writer, name string) status.FileResult {
	content, err := src.ReadFile(ctx, name)
	if err != nil {
		return status.FileResult{Name: name, Outcome: status.OutcomeFailedIOError, Err: err}
	}

	res := pipe.Run(ctx, string(content))
	modified := []byte(res.ModifiedContent)

	if err := dst.WriteFileGuarded(ctx, name, modified); err != nil {
		outcome := status.OutcomeFailedIOError
		if errors.Is(err, status.ErrEmptyOutput) {
			outcome = status.OutcomeFailedEmptyOutput
		}
		return status.FileResult{
			Name:    name,
			Outcome: outcome,
			Changed: res.WasModified,
			Applied: res.AppliedRules,
			Err:     err,
		}
	}

	return status.FileResult{
		Name:     name,
		Outcome:  status.OutcomeWritten,
		Changed:  res.WasModified,
		Applied:  res.AppliedRules,
		Checksum: status.Checksum(modified),
	}
}

// 🔒 updateLock folds this run's outcomes into the lock file
func (op *transformOperation) updateLock(ctx context.Context, rep *status.Report) error {
	st, err := state.Load(ctx, op.Config.Lock)
	if err != nil {
		return err
	}

	st.ConfigHash = op.Config.Hash()
	st.LastRun = time.Now().UTC()
	for _, res := range rep.Results {
		st.RecordFile(res.Name, res.Outcome.String(), res.Checksum)
	}

	if err := st.Save(ctx, op.Config.Lock); err != nil {
		return err
	}

	op.Users.LogLockUpdate(op.Config.Lock)

	return nil
}
