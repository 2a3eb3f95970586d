package state

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/retrofit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// SchemaVersion is bumped when the lock file layout changes.
const SchemaVersion = 1

// RunState is the persisted record of the last run, kept in a
// .retrofit.lock file next to the tree it describes.
type RunState struct {
	SchemaVersion int `json:"schema_version"`

	LastRun time.Time `json:"last_run"`

	// ConfigHash detects when the profile changed since the last run
	ConfigHash string `json:"config_hash"`

	// UpstreamRef and UpstreamCommit record where the snapshot came from
	UpstreamRef    string    `json:"upstream_ref,omitempty"`
	UpstreamCommit string    `json:"upstream_commit,omitempty"`
	LastFetched    time.Time `json:"last_fetched"`

	// Files holds per-file outcomes, accumulated across runs
	Files []FileRecord `json:"files"`
}

// FileRecord is one file's outcome from its most recent run.
type FileRecord struct {
	Name     string `json:"name"`
	Outcome  string `json:"outcome"`
	Checksum string `json:"checksum,omitempty"`
}

// Load reads the lock file at path. A missing file yields a fresh state.
func Load(ctx context.Context, path string) (*RunState, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading run state")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &RunState{SchemaVersion: SchemaVersion}, nil
	}
	if err != nil {
		return nil, errors.Errorf("reading lock file: %w", err)
	}

	var st RunState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, errors.Errorf("parsing lock file: %w", err)
	}
	if st.SchemaVersion > SchemaVersion {
		return nil, errors.Errorf("lock file schema %d is newer than supported %d",
			st.SchemaVersion, SchemaVersion)
	}
	return &st, nil
}

// Save writes the state to path through a guarded write, so a crashed
// run never leaves a truncated lock file behind.
func (s *RunState) Save(ctx context.Context, path string) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Int("files", len(s.Files)).Msg("writing run state")

	s.SchemaVersion = SchemaVersion

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Errorf("marshaling run state: %w", err)
	}
	data = append(data, '\n')

	writer := status.NewWriter(filepath.Dir(path))
	if err := writer.WriteFileGuarded(ctx, filepath.Base(path), data); err != nil {
		return errors.Errorf("writing lock file: %w", err)
	}
	return nil
}

// RecordFile upserts one file outcome, keeping Files sorted by name.
func (s *RunState) RecordFile(name, outcome, checksum string) {
	rec := FileRecord{Name: name, Outcome: outcome, Checksum: checksum}
	for i, f := range s.Files {
		if f.Name == name {
			s.Files[i] = rec
			return
		}
	}
	s.Files = append(s.Files, rec)
	sort.Slice(s.Files, func(i, j int) bool {
		return s.Files[i].Name < s.Files[j].Name
	})
}

// FindFile returns the record for name, or nil when the file has never
// been recorded.
func (s *RunState) FindFile(name string) *FileRecord {
	for i := range s.Files {
		if s.Files[i].Name == name {
			return &s.Files[i]
		}
	}
	return nil
}
