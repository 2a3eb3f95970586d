package operation

import (
	"context"
	"os"

	"github.com/walteh/retrofit/pkg/config"
	"github.com/walteh/retrofit/pkg/log"
	"github.com/walteh/retrofit/pkg/remote"
	"github.com/walteh/retrofit/pkg/status"
	"github.com/walteh/retrofit/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ErrBatchFailed marks a run that finished but left failures behind.
// Callers translate it into the batch-failure exit code.
var ErrBatchFailed = errors.Base("batch completed with failures")

// 🎯 Operation is one executable retrofit verb
type Operation interface {
	// Name returns the operation name (e.g. "transform")
	Name() string
	// Execute runs the operation to completion
	Execute(ctx context.Context) error
}

// 🔧 Options carries the collaborators shared by all operations
type Options struct {
	// Config is the profile to run against
	Config *config.Config
	// Tracker collects per-file results and echoes console lines
	Tracker *status.Tracker
	// Users prints user-facing progress lines
	Users *log.UserLogger
	// Provider is the remote repository provider (fetch only)
	Provider remote.Provider
}

// ✅ Validate checks that the required collaborators are present
func (o Options) Validate() error {
	if o.Config == nil {
		return errors.Errorf("config is required")
	}
	if o.Tracker == nil {
		return errors.Errorf("tracker is required")
	}
	if o.Users == nil {
		return errors.Errorf("user logger is required")
	}
	return nil
}

// 🧱 baseOperation holds what every operation works with
type baseOperation struct {
	Config  *config.Config
	Tracker *status.Tracker
	Users   *log.UserLogger
}

func newBaseOperation(opts Options) baseOperation {
	return baseOperation{
		Config:  opts.Config,
		Tracker: opts.Tracker,
		Users:   opts.Users,
	}
}

// 🏭 pipeline assembles the rewrite pipeline from the profile
func (b baseOperation) pipeline() *text.Pipeline {
	return text.NewPipeline(text.Catalogue(text.CatalogueOptions{
		OldPackage:      b.Config.Rewrite.OldPackage,
		NewPackage:      b.Config.Rewrite.NewPackage,
		OldAPIRoot:      b.Config.Rewrite.OldAPIRoot,
		NewAPIRoot:      b.Config.Rewrite.NewAPIRoot,
		MarkerNames:     b.Config.Rewrite.Markers,
		MarkerPrefixes:  b.Config.Rewrite.MarkerPrefixes,
		MarkerImport:    b.Config.Rewrite.MarkerImport,
		MarkerInterface: b.Config.Rewrite.MarkerInterface,
	})...)
}

// 📂 checkDir verifies that path exists and is a directory. Both ends of
// a run are required to exist up front, so a bad profile fails before
// any file is touched.
func checkDir(path, role string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Errorf("%s directory %s: %w", role, path, err)
	}
	if !info.IsDir() {
		return errors.Errorf("%s path %s is not a directory", role, path)
	}
	return nil
}
