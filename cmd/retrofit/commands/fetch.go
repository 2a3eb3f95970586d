package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/retrofit/cmd/retrofit/opts"
	"github.com/walteh/retrofit/pkg/operation"
	"github.com/walteh/retrofit/pkg/remote"
	"gitlab.com/tozd/go/errors"
)

// NewFetchCmd creates a new fetch command
func NewFetchCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a fresh upstream snapshot",
		Long: `Fetch downloads the configured upstream directory into the source
snapshot that transform consumes. It will:
1. Resolve the configured ref to a commit hash
2. List matching files under the remote path
3. Download them in parallel through the guarded writer
4. Record the upstream commit in the lock file

Fetch is the only command that talks to the network; transform and
status work purely on the local tree.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "fetch").Logger().WithContext(ctx)

			if opts.Config.Remote == nil {
				return errors.New("remote is not configured")
			}

			provider, err := remote.New(ctx, opts.Config.Remote.Provider)
			if err != nil {
				return errors.Errorf("creating provider: %w", err)
			}

			operationOpts := opts.OperationOptions()
			operationOpts.Provider = provider

			op, err := operation.NewFetchOperation(operationOpts)
			if err != nil {
				return errors.Errorf("creating fetch operation: %w", err)
			}

			if err := opts.Runner.Run(ctx, op); err != nil {
				return errors.Errorf("fetching files: %w", err)
			}

			return nil
		},
	}

	return cmd
}
