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

package config

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📚 Config is the root configuration for a retrofit run. It names the
// upstream snapshot directory, the back-ported destination directory, and
// the rewrite profile that turns one into the other.
type Config struct {
	// 📂 Source is the directory holding the upstream snapshot
	Source string `json:"source" yaml:"source"`

	// 📂 Destination is the directory receiving the rewritten files
	Destination string `json:"destination" yaml:"destination"`

	// 🔍 Extension filters which files in Source are candidates
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty"`

	// 🚫 Exclude lists exact file names that stay hand-maintained in Destination
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	// 🙈 Ignore lists glob patterns dropped from consideration entirely
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`

	// 🔒 Lock is the path of the run-state file
	Lock string `json:"lock,omitempty" yaml:"lock,omitempty"`

	// 🔄 Rewrite configures the rewrite rules applied to each candidate
	Rewrite Rewrite `json:"rewrite" yaml:"rewrite"`

	// 🌐 Remote optionally names where fresh upstream snapshots come from
	Remote *Remote `json:"remote,omitempty" yaml:"remote,omitempty"`

	// location is the path this config was loaded from, if any
	location string
}

// 🔄 Rewrite holds the knobs for the rewrite rule catalogue. Empty fields
// disable the corresponding rules.
type Rewrite struct {
	OldPackage string `json:"old_package,omitempty" yaml:"old_package,omitempty"` // package declaration to relocate
	NewPackage string `json:"new_package,omitempty" yaml:"new_package,omitempty"` // relocated package declaration

	OldAPIRoot string `json:"old_api_root,omitempty" yaml:"old_api_root,omitempty"` // import namespace root to remap
	NewAPIRoot string `json:"new_api_root,omitempty" yaml:"new_api_root,omitempty"` // remapped namespace root

	// Markers are exact annotation names whose lines are deleted
	Markers []string `json:"markers,omitempty" yaml:"markers,omitempty"`

	// MarkerPrefixes delete annotation lines by qualified-name prefix
	MarkerPrefixes []string `json:"marker_prefixes,omitempty" yaml:"marker_prefixes,omitempty"`

	// MarkerImport is the exact import dropped alongside the markers
	MarkerImport string `json:"marker_import,omitempty" yaml:"marker_import,omitempty"`

	// MarkerInterface is removed from implements clauses wherever it appears
	MarkerInterface string `json:"marker_interface,omitempty" yaml:"marker_interface,omitempty"`
}

// 🌐 Remote identifies the upstream repository a snapshot is fetched from.
type Remote struct {
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"` // provider name (default "github")
	Repo     string `json:"repo" yaml:"repo"`                             // full repo URL (e.g. github.com/org/repo)
	Ref      string `json:"ref,omitempty" yaml:"ref,omitempty"`           // branch or tag
	Path     string `json:"path" yaml:"path"`                             // path within repo
}

// 🏭 DefaultConfig returns the built-in profile used when no config file is
// present: back-porting the upstream java.util.json preview sources into the
// jdk.sandbox namespace.
func DefaultConfig() *Config {
	return &Config{
		Source:      "updates/upstream/jdk.internal.util.json",
		Destination: "json-java21/src/main/java/jdk/sandbox/internal/util/json",
		Extension:   ".java",
		Exclude:     []string{"StableValue.java", "Utils.java"},
		Lock:        ".retrofit.lock",
		Rewrite: Rewrite{
			OldPackage:      "jdk.internal.util.json",
			NewPackage:      "jdk.sandbox.internal.util.json",
			OldAPIRoot:      "java.util.json",
			NewAPIRoot:      "jdk.sandbox.java.util.json",
			Markers:         []string{"ValueBased", "StableValue"},
			MarkerPrefixes:  []string{"jdk.internal."},
			MarkerImport:    "jdk.internal.ValueBased",
			MarkerInterface: "JsonValueImpl",
		},
		Remote: &Remote{
			Provider: "github",
			Repo:     "github.com/openjdk/jdk-sandbox",
			Ref:      "json",
			Path:     "src/java.base/share/classes/jdk/internal/util/json",
		},
	}
}

// 🔍 Validate checks the configuration for consistency and fills in defaults.
func Validate(ctx context.Context, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is required")
	}

	// Check required fields
	if cfg.Source == "" {
		return errors.New("source directory is required")
	}
	if cfg.Destination == "" {
		return errors.New("destination directory is required")
	}

	// Set defaults
	if cfg.Extension == "" {
		cfg.Extension = ".java"
	}
	if cfg.Lock == "" {
		cfg.Lock = ".retrofit.lock"
	}

	if !strings.HasPrefix(cfg.Extension, ".") {
		return errors.Errorf("extension must start with a dot: %q", cfg.Extension)
	}

	// The rewrite pairs only make sense together
	if (cfg.Rewrite.OldPackage == "") != (cfg.Rewrite.NewPackage == "") {
		return errors.New("old_package and new_package must be set together")
	}
	if (cfg.Rewrite.OldAPIRoot == "") != (cfg.Rewrite.NewAPIRoot == "") {
		return errors.New("old_api_root and new_api_root must be set together")
	}

	if cfg.Remote != nil {
		if cfg.Remote.Provider == "" {
			cfg.Remote.Provider = "github"
		}
		if cfg.Remote.Repo == "" {
			return errors.New("remote repo is required")
		}
		if cfg.Remote.Ref == "" {
			cfg.Remote.Ref = "main"
		}
		if cfg.Remote.Path == "" {
			return errors.New("remote path is required")
		}
	}

	return nil
}

// 📝 Hash returns a stable digest of the config, recorded in the lock file
// so later runs can tell when the profile changed underneath them.
func (cfg *Config) Hash() string {
	data, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Location returns the path the config was loaded from, or "" for the
// built-in default profile.
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s -> %s (%s)", cfg.Source, cfg.Destination, cfg.Extension)
}
