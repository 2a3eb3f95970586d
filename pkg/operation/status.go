package operation

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/retrofit/pkg/log"
	"github.com/walteh/retrofit/pkg/state"
	"github.com/walteh/retrofit/pkg/status"
	"github.com/walteh/retrofit/pkg/text"
)

// 📊 NewStatusOperation creates the dry-run preview operation
func NewStatusOperation(opts Options) (Operation, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &statusOperation{baseOperation: newBaseOperation(opts)}, nil
}

// 📊 statusOperation previews what transform would do
type statusOperation struct {
	baseOperation
}

// 📛 Name returns the operation name
func (op *statusOperation) Name() string {
	return "status"
}

// 🏃 Execute runs the pipeline in memory and compares the results
// against the destination. Nothing is written: the run reports each
// file as new, modified, unchanged, or would-fail.
func (op *statusOperation) Execute(ctx context.Context) error {
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
		op.Users.LogFileChange(log.FileChange{
			Type:        log.FileSkipped,
			Path:        name,
			Description: "excluded",
		})
	}

	pipe := op.pipeline()
	src := status.NewWriter(op.Config.Source)
	dst := status.NewWriter(op.Config.Destination)

	counts := map[status.FileStatus]int{}
	for _, name := range sel.Candidates {
		st := op.fileStatus(ctx, pipe, src, dst, name)
		op.Tracker.Preview(ctx, name, st)
		counts[st]++
	}

	op.checkDrift(ctx, dst, sel)

	op.Users.LogStateChange(fmt.Sprintf("%d new, %d modified, %d unchanged, %d would fail",
		counts[status.StatusNew], counts[status.StatusModified],
		counts[status.StatusUnchanged], counts[status.StatusWouldFail]))

	return nil
}

// 🔍 fileStatus computes the dry-run status of one candidate
func (op *statusOperation) fileStatus(ctx context.Context, pipe *text.Pipeline, src, dst *status.Writer, name string) status.FileStatus {
	content, err := src.ReadFile(ctx, name)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Str("file", name).Err(err).Msg("source unreadable")
		return status.StatusWouldFail
	}

	res := pipe.Run(ctx, string(content))
	if len(res.ModifiedContent) == 0 {
		return status.StatusWouldFail
	}

	exists, err := dst.FileExists(ctx, name)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Str("file", name).Err(err).Msg("destination unreadable")
		return status.StatusWouldFail
	}
	if !exists {
		return status.StatusNew
	}

	existing, err := dst.ReadFile(ctx, name)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Str("file", name).Err(err).Msg("destination unreadable")
		return status.StatusWouldFail
	}

	if bytes.Equal(existing, []byte(res.ModifiedContent)) {
		return status.StatusUnchanged
	}

	return status.StatusModified
}

// ⚠️ checkDrift compares the lock file against the destination tree and
// warns about files that changed hands since the last run.
func (op *statusOperation) checkDrift(ctx context.Context, dst *status.Writer, sel *Selection) {
	st, err := state.Load(ctx, op.Config.Lock)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("lock file unavailable, skipping drift check")
		return
	}

	if st.ConfigHash != "" && st.ConfigHash != op.Config.Hash() {
		op.Users.LogValidation(false, "profile changed since last run", nil)
	}

	for _, rec := range st.Files {
		if rec.Outcome != status.OutcomeWritten.String() || rec.Checksum == "" {
			continue
		}
		content, err := dst.ReadFile(ctx, rec.Name)
		if err != nil {
			continue
		}
		if status.Checksum(content) != rec.Checksum {
			op.Users.LogValidation(false, fmt.Sprintf("%s drifted since last run", rec.Name), nil)
		}
	}
}
