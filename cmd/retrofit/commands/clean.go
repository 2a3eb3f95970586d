package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/retrofit/cmd/retrofit/opts"
	"github.com/walteh/retrofit/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCleanCmd creates a new clean command
func NewCleanCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove generated files from the destination",
		Long: `Clean removes previously generated files from the destination tree.
It will:
1. Collect every name the pipeline generates or has generated before
2. Delete those files from the destination
3. Reset the lock file

Hand-maintained files on the exclusion list are never touched, and the
source snapshot is left alone entirely.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "clean").Logger().WithContext(ctx)

			op, err := operation.NewCleanOperation(opts.OperationOptions())
			if err != nil {
				return errors.Errorf("creating clean operation: %w", err)
			}

			if err := opts.Runner.Run(ctx, op); err != nil {
				return errors.Errorf("cleaning files: %w", err)
			}

			return nil
		},
	}

	return cmd
}
