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

package github

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"github.com/walteh/retrofit/pkg/remote"
	"gitlab.com/tozd/go/errors"
)

func init() {
	remote.Register("github", New)
}

// 🎯 Provider implements the remote.Provider interface for GitHub
type Provider struct {
	client *github.Client
}

// 🏭 New creates a new GitHub provider. A GITHUB_TOKEN raises the API
// rate limit, but public repositories work without one.
func New(ctx context.Context) (remote.Provider, error) {
	client := github.NewClient(nil)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		client = client.WithAuthToken(token)
	}

	return &Provider{client: client}, nil
}

// 📛 Name returns the name of the provider
func (p *Provider) Name() string {
	return "github"
}

// 🔍 parseRepo parses a GitHub repository identifier, tolerating a
// leading "github.com/" host prefix
func (p *Provider) parseRepo(repo string) (owner, name string, err error) {
	parts := strings.Split(repo, "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", errors.Errorf("invalid repository format: %s", repo)
	}

	return parts[len(parts)-2], parts[len(parts)-1], nil
}

// 📂 ListFiles returns the names of files directly under args.Path.
// Subdirectories and their contents are ignored.
func (p *Provider) ListFiles(ctx context.Context, args remote.Args) ([]string, error) {
	owner, name, err := p.parseRepo(args.Repo)
	if err != nil {
		return nil, errors.Errorf("parsing repo: %w", err)
	}

	_, entries, _, err := p.client.Repositories.GetContents(ctx, owner, name, args.Path, &github.RepositoryContentGetOptions{
		Ref: args.Ref,
	})
	if err != nil {
		return nil, errors.Errorf("listing directory: %w", err)
	}
	if entries == nil {
		return nil, errors.Errorf("path %s is not a directory", args.Path)
	}

	var files []string
	for _, entry := range entries {
		if entry.GetType() != "file" {
			continue
		}
		files = append(files, entry.GetName())
	}

	zerolog.Ctx(ctx).Debug().Str("path", args.Path).Int("files", len(files)).Msg("listed remote directory")

	return files, nil
}

// 📄 GetFile retrieves a single file's contents
func (p *Provider) GetFile(ctx context.Context, args remote.Args, name string) (io.ReadCloser, error) {
	owner, repo, err := p.parseRepo(args.Repo)
	if err != nil {
		return nil, errors.Errorf("parsing repo: %w", err)
	}

	rc, _, err := p.client.Repositories.DownloadContents(ctx, owner, repo, path.Join(args.Path, name), &github.RepositoryContentGetOptions{
		Ref: args.Ref,
	})
	if err != nil {
		return nil, errors.Errorf("downloading %s: %w", name, err)
	}

	return rc, nil
}

// 🎯 GetCommitHash resolves args.Ref to a commit hash
func (p *Provider) GetCommitHash(ctx context.Context, args remote.Args) (string, error) {
	owner, name, err := p.parseRepo(args.Repo)
	if err != nil {
		return "", errors.Errorf("parsing repo: %w", err)
	}

	// TODO(dr.methodical): 🏷️ resolve tag refs as well, not just branches
	ref, _, err := p.client.Git.GetRef(ctx, owner, name, "refs/heads/"+args.Ref)
	if err != nil {
		return "", errors.Errorf("getting reference: %w", err)
	}

	return ref.Object.GetSHA(), nil
}

// 🔗 GetPermalink returns a permanent link to the file
func (p *Provider) GetPermalink(args remote.Args, commitHash string, name string) string {
	owner, repo, err := p.parseRepo(args.Repo)
	if err != nil {
		return ""
	}

	return fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s/%s", owner, repo, commitHash, args.Path, name)
}
