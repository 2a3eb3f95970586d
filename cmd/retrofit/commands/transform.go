package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/retrofit/cmd/retrofit/opts"
	"github.com/walteh/retrofit/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewTransformCmd creates a new transform command
func NewTransformCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Rewrite the upstream snapshot into the destination tree",
		Long: `Transform runs the full rewrite over the source snapshot.
It will:
1. List candidate files in the source directory
2. Run each one through the rewrite rule catalogue
3. Write the results atomically into the destination
4. Record every per-file outcome in the lock file

Files on the exclusion list are never read or written. A failing file
never stops the batch: the run continues with the remaining candidates
and the command exits non-zero at the end.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "transform").Logger().WithContext(ctx)

			op, err := operation.NewTransformOperation(opts.OperationOptions())
			if err != nil {
				return errors.Errorf("creating transform operation: %w", err)
			}

			if err := opts.Runner.Run(ctx, op); err != nil {
				return errors.Errorf("transforming files: %w", err)
			}

			return nil
		},
	}

	return cmd
}
