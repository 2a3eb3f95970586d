package remote_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/retrofit/pkg/remote"
)

type fakeProvider struct {
	name string
}

func (p *fakeProvider) Name() string {
	return p.name
}

func (p *fakeProvider) ListFiles(ctx context.Context, args remote.Args) ([]string, error) {
	return []string{"A.java", "B.java"}, nil
}

func (p *fakeProvider) GetFile(ctx context.Context, args remote.Args, name string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("content of " + name)), nil
}

func (p *fakeProvider) GetCommitHash(ctx context.Context, args remote.Args) (string, error) {
	return "deadbeef", nil
}

func (p *fakeProvider) GetPermalink(args remote.Args, commitHash string, name string) string {
	return "fake://" + args.Repo + "/" + commitHash + "/" + name
}

func TestNew(t *testing.T) {
	remote.Register("fake", func(ctx context.Context) (remote.Provider, error) {
		return &fakeProvider{name: "fake"}, nil
	})

	t.Run("returns_registered_provider", func(t *testing.T) {
		p, err := remote.New(context.Background(), "fake")
		require.NoError(t, err)
		assert.Equal(t, "fake", p.Name())
	})

	t.Run("unknown_provider_lists_options", func(t *testing.T) {
		_, err := remote.New(context.Background(), "gitlab")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "provider gitlab not found")
		assert.Contains(t, err.Error(), "fake")
	})
}
