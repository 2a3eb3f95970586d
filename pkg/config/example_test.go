package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/retrofit/pkg/config"
)

func ExampleLoadConfig_yaml() {
	ctx := context.Background()
	// Create a temporary YAML config file
	configYAML := `
source: upstream/snapshot
destination: backport/out
exclude:
  - Keep.java

rewrite:
  old_package: a.b.c
  new_package: x.y.c
`

	tmpDir := os.TempDir()
	configPath := filepath.Join(tmpDir, "retrofit-example.yaml")
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	// Load and validate the config
	cfg, err := config.LoadConfig(ctx, configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	// Print some config details
	fmt.Printf("Profile: %s\n", cfg.String())
	fmt.Printf("Package: %s -> %s\n", cfg.Rewrite.OldPackage, cfg.Rewrite.NewPackage)
	fmt.Printf("Excluded files: %d\n", len(cfg.Exclude))

	// Output:
	// Profile: upstream/snapshot -> backport/out (.java)
	// Package: a.b.c -> x.y.c
	// Excluded files: 1
}

func ExampleDefaultConfig() {
	cfg := config.DefaultConfig()

	fmt.Printf("Extension: %s\n", cfg.Extension)
	fmt.Printf("Marker interface: %s\n", cfg.Rewrite.MarkerInterface)

	// Output:
	// Extension: .java
	// Marker interface: JsonValueImpl
}
