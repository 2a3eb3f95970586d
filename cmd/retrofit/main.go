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

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/retrofit/cmd/retrofit/commands"
	"github.com/walteh/retrofit/cmd/retrofit/opts"
	"github.com/walteh/retrofit/pkg/log"
	"github.com/walteh/retrofit/pkg/operation"
	"gitlab.com/tozd/go/errors"

	// Register the github provider
	_ "github.com/walteh/retrofit/pkg/remote/github"
)

// Exit codes: configuration problems abort before any file is touched,
// per-file failures surface only after every candidate was attempted.
const (
	exitOK           = 0
	exitConfigError  = 1
	exitBatchFailure = 2
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	ro := &opts.RootOpts{}
	rootCmd := newRootCmd(ro)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		users := log.NewUserLogger(ctx)
		if errors.Is(err, operation.ErrBatchFailed) {
			users.LogValidation(false, "Completed with failures", err)
		} else {
			users.LogValidation(false, "Command failed", err)
		}
		return exitCode(err)
	}

	return exitOK
}

// newRootCmd wires the root command and its subcommands around a shared
// RootOpts that is filled in once the flags are parsed.
func newRootCmd(ro *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "retrofit",
		Short: "Rewrite upstream source files into a vendored namespace",
		Long: `retrofit maintains a back-ported copy of upstream source files.
It applies an ordered catalogue of rewrite rules (package relocation,
import remapping, marker stripping, dialect back-ports) to every candidate
file in the source snapshot and writes the results atomically into the
destination tree.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context())
			cmd.SetContext(ctx)

			initialized, err := newRootOpts(ctx)
			if err != nil {
				return err
			}
			*ro = *initialized

			return nil
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewTransformCmd(ro),
		commands.NewStatusCmd(ro),
		commands.NewFetchCmd(ro),
		commands.NewCleanCmd(ro),
		newVersionCmd(),
	)

	return rootCmd
}

// exitCode maps an execution error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, operation.ErrBatchFailed) {
		return exitBatchFailure
	}
	return exitConfigError
}
