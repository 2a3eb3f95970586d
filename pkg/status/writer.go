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

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrEmptyOutput is returned when a guarded write refuses to replace a
// destination file with zero bytes.
var ErrEmptyOutput = errors.Base("refusing to overwrite with empty output")

// 💾 Writer performs file operations inside one base directory. All names
// are relative to it.
type Writer struct {
	baseDir string
}

// 🏭 NewWriter creates a writer rooted at baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: filepath.Clean(baseDir)}
}

// Path returns the full path for a name inside the base directory.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.baseDir, name)
}

// 🔍 Checksum generates a SHA-256 hash of the content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// 📝 WriteFileGuarded writes content to name via a temp sibling. The
// destination is only ever swapped for a fully written temp file, and a
// zero-byte temp file is never swapped in: the previous destination
// survives and ErrEmptyOutput comes back instead.
func (w *Writer) WriteFileGuarded(ctx context.Context, name string, content []byte) error {
	dstPath := w.Path(name)
	tmpPath := dstPath + ".tmp"

	// Write to temp file
	if err := os.WriteFile(tmpPath, content, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	// Check the temp file size on disk
	info, err := os.Stat(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("checking temp file: %w", err)
	}
	if info.Size() == 0 {
		if err := os.Remove(tmpPath); err != nil {
			return errors.Errorf("removing empty temp file: %w", err)
		}
		zerolog.Ctx(ctx).Warn().Str("file", name).Msg("refusing to overwrite with empty output")
		return errors.WithStack(ErrEmptyOutput)
	}

	// Clear the previous destination before the swap
	if _, err := os.Stat(dstPath); err == nil {
		if err := os.Remove(dstPath); err != nil {
			os.Remove(tmpPath)
			return errors.Errorf("removing previous file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		os.Remove(tmpPath)
		return errors.Errorf("checking destination: %w", err)
	}

	// Rename temp file to target
	if err := os.Rename(tmpPath, dstPath); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// ReadFile reads a file inside the base directory.
func (w *Writer) ReadFile(ctx context.Context, name string) ([]byte, error) {
	content, err := os.ReadFile(w.Path(name))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// DeleteFile removes a file inside the base directory.
func (w *Writer) DeleteFile(ctx context.Context, name string) error {
	if err := os.Remove(w.Path(name)); err != nil {
		return errors.Errorf("deleting file: %w", err)
	}
	return nil
}

// FileExists reports whether a file exists inside the base directory.
func (w *Writer) FileExists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(w.Path(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

// EnsureDir creates the base directory if it does not exist yet.
func (w *Writer) EnsureDir(ctx context.Context) error {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return errors.Errorf("creating directory: %w", err)
	}
	return nil
}
