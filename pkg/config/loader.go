package config

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// candidatePaths are probed in order when no config path is given.
var candidatePaths = []string{
	".retrofit.yaml",
	".retrofit.yml",
	".retrofit.hcl",
	".retrofit.json",
	".retrofit",
}

// LoadConfig loads a configuration file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// - .retrofit will try both YAML and HCL formats
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var cfg *Config

	// For .retrofit files, try both YAML and HCL
	if ext == ".retrofit" || filepath.Base(path) == ".retrofit" {
		cfg, err = loadYAML(data)
		if err != nil {
			cfg, err = loadHCL(data, path)
		}
		if err != nil {
			return nil, errors.Errorf("parsing %s as YAML or HCL: %w", path, err)
		}
	} else {
		switch ext {
		case ".json":
			cfg, err = loadJSON(data)
		case ".yaml", ".yml":
			cfg, err = loadYAML(data)
		case ".hcl":
			cfg, err = loadHCL(data, path)
		default:
			return nil, errors.Errorf("unsupported file extension %q", ext)
		}
		if err != nil {
			return nil, err
		}
	}

	cfg.location = path
	if err := Validate(ctx, cfg); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads the config at path, or probes the working directory
// for a .retrofit file when path is empty. When nothing is found the
// built-in default profile is returned.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return LoadConfig(ctx, path)
	}

	for _, candidate := range candidatePaths {
		if _, err := os.Stat(candidate); err == nil {
			return LoadConfig(ctx, candidate)
		}
	}

	zerolog.Ctx(ctx).Debug().Msg("no config file found, using default profile")
	cfg := DefaultConfig()
	if err := Validate(ctx, cfg); err != nil {
		return nil, errors.Errorf("validating default config: %w", err)
	}
	return cfg, nil
}

// loadJSON loads a configuration from JSON data
func loadJSON(data []byte) (*Config, error) {
	var cfg Config
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &cfg, nil
}

// loadYAML loads a configuration from YAML data
func loadYAML(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}

// hclConfig mirrors Config with HCL-decodable tags. gohcl needs its own
// schema struct, so the shape is converted after decoding.
type hclConfig struct {
	Source      string      `hcl:"source"`
	Destination string      `hcl:"destination"`
	Extension   string      `hcl:"extension,optional"`
	Exclude     []string    `hcl:"exclude,optional"`
	Ignore      []string    `hcl:"ignore,optional"`
	Lock        string      `hcl:"lock,optional"`
	Rewrite     *hclRewrite `hcl:"rewrite,block"`
	Remote      *hclRemote  `hcl:"remote,block"`
}

type hclRewrite struct {
	OldPackage      string   `hcl:"old_package,optional"`
	NewPackage      string   `hcl:"new_package,optional"`
	OldAPIRoot      string   `hcl:"old_api_root,optional"`
	NewAPIRoot      string   `hcl:"new_api_root,optional"`
	Markers         []string `hcl:"markers,optional"`
	MarkerPrefixes  []string `hcl:"marker_prefixes,optional"`
	MarkerImport    string   `hcl:"marker_import,optional"`
	MarkerInterface string   `hcl:"marker_interface,optional"`
}

type hclRemote struct {
	Provider string `hcl:"provider,optional"`
	Repo     string `hcl:"repo"`
	Ref      string `hcl:"ref,optional"`
	Path     string `hcl:"path"`
}

// loadHCL loads a configuration from HCL data
func loadHCL(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var raw hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Source:      raw.Source,
		Destination: raw.Destination,
		Extension:   raw.Extension,
		Exclude:     raw.Exclude,
		Ignore:      raw.Ignore,
		Lock:        raw.Lock,
	}
	if raw.Rewrite != nil {
		cfg.Rewrite = Rewrite{
			OldPackage:      raw.Rewrite.OldPackage,
			NewPackage:      raw.Rewrite.NewPackage,
			OldAPIRoot:      raw.Rewrite.OldAPIRoot,
			NewAPIRoot:      raw.Rewrite.NewAPIRoot,
			Markers:         raw.Rewrite.Markers,
			MarkerPrefixes:  raw.Rewrite.MarkerPrefixes,
			MarkerImport:    raw.Rewrite.MarkerImport,
			MarkerInterface: raw.Rewrite.MarkerInterface,
		}
	}
	if raw.Remote != nil {
		cfg.Remote = &Remote{
			Provider: raw.Remote.Provider,
			Repo:     raw.Remote.Repo,
			Ref:      raw.Remote.Ref,
			Path:     raw.Remote.Path,
		}
	}

	return cfg, nil
}
