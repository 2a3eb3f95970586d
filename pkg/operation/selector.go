package operation

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/retrofit/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 📋 Selection splits the source listing into rewrite candidates and
// excluded names, both sorted.
type Selection struct {
	Candidates []string
	Excluded   []string
}

// 🔍 Selector lists candidate files from the source directory.
type Selector struct {
	cfg *config.Config
}

// 🏭 NewSelector creates a selector for the profile's source directory
func NewSelector(cfg *config.Config) *Selector {
	return &Selector{cfg: cfg}
}

// Select reads the source directory without recursing, keeps files with
// the configured extension, drops ignore-pattern matches, and splits
// off the excluded names.
func (s *Selector) Select(ctx context.Context) (*Selection, error) {
	entries, err := os.ReadDir(s.cfg.Source)
	if err != nil {
		return nil, errors.Errorf("reading source directory: %w", err)
	}

	excluded := make(map[string]bool, len(s.cfg.Exclude))
	for _, name := range s.cfg.Exclude {
		excluded[name] = true
	}

	sel := &Selection{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, s.cfg.Extension) {
			continue
		}
		if s.ignored(ctx, name) {
			continue
		}
		if excluded[name] {
			sel.Excluded = append(sel.Excluded, name)
			continue
		}
		sel.Candidates = append(sel.Candidates, name)
	}

	sort.Strings(sel.Candidates)
	sort.Strings(sel.Excluded)

	zerolog.Ctx(ctx).Debug().
		Int("candidates", len(sel.Candidates)).
		Int("excluded", len(sel.Excluded)).
		Msg("selected source files")

	return sel, nil
}

// 🙈 ignored checks a name against the profile's ignore globs
func (s *Selector) ignored(ctx context.Context, name string) bool {
	for _, pattern := range s.cfg.Ignore {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("file", name).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("file", name).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}

	return false
}
