package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/retrofit/cmd/retrofit/opts"
	"github.com/walteh/retrofit/pkg/config"
	"github.com/walteh/retrofit/pkg/log"
	"github.com/walteh/retrofit/pkg/operation"
	"github.com/walteh/retrofit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
	async      bool
)

// newRootOpts creates a new RootOpts with initialized dependencies
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	// Create user logger
	userLogger := log.NewUserLogger(ctx)

	// Load config, falling back to the built-in profile
	cfg, err := config.LoadOrDefault(ctx, configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	return &opts.RootOpts{
		Config:  cfg,
		Tracker: status.NewTracker(os.Stdout, status.NewConsoleFormatter()),
		Users:   userLogger,
		Runner:  operation.NewRunner(async),
	}, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (defaults to probing .retrofit.yaml/.hcl/.json)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&async, "async", false, "run operations asynchronously")
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}
