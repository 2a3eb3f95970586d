package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/retrofit/cmd/retrofit/opts"
	"github.com/walteh/retrofit/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewStatusCmd creates a new status command
func NewStatusCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Preview what transform would do",
		Long: `Status runs the rewrite pipeline in memory and compares the results
against the destination tree. It will:
1. List candidate files in the source directory
2. Run each one through the rewrite rule catalogue
3. Report each file as new, modified, unchanged, or would-fail
4. Warn when destination files drifted since the last recorded run

Nothing is written: status is informational and always exits zero
unless the configuration itself is broken.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "status").Logger().WithContext(ctx)

			op, err := operation.NewStatusOperation(opts.OperationOptions())
			if err != nil {
				return errors.Errorf("creating status operation: %w", err)
			}

			if err := opts.Runner.Run(ctx, op); err != nil {
				return errors.Errorf("checking status: %w", err)
			}

			return nil
		},
	}

	return cmd
}
