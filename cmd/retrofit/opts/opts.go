package opts

import (
	"github.com/walteh/retrofit/pkg/config"
	"github.com/walteh/retrofit/pkg/log"
	"github.com/walteh/retrofit/pkg/operation"
	"github.com/walteh/retrofit/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config  *config.Config
	Tracker *status.Tracker
	Users   *log.UserLogger
	Runner  *operation.Runner
}

// OperationOptions bundles the shared collaborators for the operation layer.
func (o *RootOpts) OperationOptions() operation.Options {
	return operation.Options{
		Config:  o.Config,
		Tracker: o.Tracker,
		Users:   o.Users,
	}
}
