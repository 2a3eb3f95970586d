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

package log

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

func init() {
	// Skip and lock messages use the pterm debug printer
	pterm.EnableDebugMessages()
}

// 📢 UserLogger provides user-friendly feedback about what a run did,
// alongside the structured zerolog stream.
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer      // overrides the pterm default when set
}

// 🎨 FileChangeType represents the type of change made to a file
type FileChangeType int

const (
	FileAdded FileChangeType = iota
	FileUpdated
	FileDeleted
	FileSkipped
	FileError
)

// 🖼️ FileChange represents a change to a file
type FileChange struct {
	Type        FileChangeType
	Path        string
	Description string
	Error       error
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// WithWriter returns a copy of the logger printing to w instead of the
// pterm default.
func (u *UserLogger) WithWriter(w io.Writer) *UserLogger {
	clone := *u
	clone.out = w
	return &clone
}

func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	p := base.WithPrefix(pterm.Prefix{Text: prefix})
	if u.out != nil {
		p = p.WithWriter(u.out)
	}
	return p
}

// 📝 LogFileChange logs a file change with appropriate emoji and formatting
func (u *UserLogger) LogFileChange(change FileChange) {
	// Get base name for cleaner output
	relPath := filepath.Base(change.Path)

	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case FileAdded:
		prefix = "✨"
		action = "Added"
		printer = u.printer(pterm.Success, prefix)
	case FileUpdated:
		prefix = "🔄"
		action = "Updated"
		printer = u.printer(pterm.Info, prefix)
	case FileDeleted:
		prefix = "🗑️"
		action = "Deleted"
		printer = u.printer(pterm.Warning, prefix)
	case FileSkipped:
		prefix = "⏭️"
		action = "Skipped"
		printer = u.printer(pterm.Debug, prefix)
	case FileError:
		prefix = "❌"
		action = "Error"
		printer = u.printer(pterm.Error, prefix)
	}

	msg := fmt.Sprintf("%s %s", action, relPath)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	if change.Error != nil {
		printer.Println(msg)
		u.printer(pterm.Error, "❌").Println(change.Error)
		u.log.Error().Err(change.Error).Msg(msg)
	} else {
		printer.Println(msg)
		u.log.Info().Msg(msg)
	}
}

// 📊 LogStateChange logs a change to the overall run state
func (u *UserLogger) LogStateChange(description string) {
	u.printer(pterm.Info, "📦").Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		u.printer(pterm.Error, "❌").Println(description)
		u.printer(pterm.Error, "❌").Println(err)
		u.log.Error().Err(err).Msg(description)
	} else {
		u.printer(pterm.Warning, "⚠️").Println(description)
		u.log.Warn().Msg(description)
	}
}

// 🔒 LogLockUpdate logs lock file updates
func (u *UserLogger) LogLockUpdate(path string) {
	u.printer(pterm.Debug, "🔒").Printf("Updated lock file %s\n", path)
	u.log.Debug().Str("path", path).Msg("lock file updated")
}
