package remote

import (
	"context"
	"io"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Args identifies a directory inside a remote repository.
type Args struct {
	// Repo is the repository identifier (e.g. "github.com/openjdk/jdk-sandbox")
	Repo string
	// Ref is the branch to read from (e.g. "json")
	Ref string
	// Path is the directory inside the repository to list and download from
	Path string
}

// Provider is the primary interface for interacting with remote repository providers (e.g. GitHub)
type Provider interface {
	// Name returns the name of the provider (e.g. "github")
	Name() string
	// ListFiles returns the names of files directly under args.Path, without recursing
	ListFiles(ctx context.Context, args Args) ([]string, error)
	// GetFile returns a reader for a single file under args.Path
	GetFile(ctx context.Context, args Args, name string) (io.ReadCloser, error)
	// GetCommitHash resolves args.Ref to a commit hash
	GetCommitHash(ctx context.Context, args Args) (string, error)
	// GetPermalink returns a permanent link to view the file on the web
	GetPermalink(args Args, commitHash string, name string) string
}

// Factory creates a new provider
type Factory func(ctx context.Context) (Provider, error)

var factories = map[string]Factory{}

// Register registers a provider factory. Implementations call it from
// their init functions, so registration is finished before main runs.
func Register(name string, factory Factory) {
	factories[name] = factory
}

// New builds the provider registered under name.
func New(ctx context.Context, name string) (Provider, error) {
	factory, ok := factories[name]
	if !ok {
		options := make([]string, 0, len(factories))
		for k := range factories {
			options = append(options, k)
		}
		sort.Strings(options)
		return nil, errors.Errorf("provider %s not found, options: %s", name, strings.Join(options, ", "))
	}

	return factory(ctx)
}
