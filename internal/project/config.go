// Package project locates and loads pyfix.toml, the per-project
// configuration file. Settings found there become defaults for the CLI;
// explicit flags always win.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the configuration file pyfix looks for.
const ManifestName = "pyfix.toml"

// LintConfig is the [lint] section.
type LintConfig struct {
	// Disabled lists rule names to skip.
	Disabled []string `toml:"disabled"`
	// MaxDiagnostics caps the number of reported diagnostics per run.
	MaxDiagnostics int `toml:"max_diagnostics"`
}

// RunConfig is the [run] section.
type RunConfig struct {
	// Jobs is the parallel worker count for directory scans. Zero means
	// one worker per CPU.
	Jobs int `toml:"jobs"`
	// Cache toggles the on-disk result cache.
	Cache bool `toml:"cache"`
}

// OutputConfig is the [output] section.
type OutputConfig struct {
	// Color is one of "auto", "on", "off".
	Color string `toml:"color"`
	// Format is one of "pretty", "json".
	Format string `toml:"format"`
}

// Config is the full pyfix.toml contents merged over defaults.
type Config struct {
	Lint   LintConfig   `toml:"lint"`
	Run    RunConfig    `toml:"run"`
	Output OutputConfig `toml:"output"`

	// Root is the directory the config was loaded from, empty for defaults.
	Root string `toml:"-"`
}

// DefaultConfig returns the settings used when no pyfix.toml exists.
func DefaultConfig() Config {
	return Config{
		Lint: LintConfig{
			MaxDiagnostics: 200,
		},
		Run: RunConfig{
			Cache: true,
		},
		Output: OutputConfig{
			Color:  "auto",
			Format: "pretty",
		},
	}
}

// FindManifest walks up from startDir to locate pyfix.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadConfig parses one pyfix.toml over the defaults. Absent keys keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		return Config{}, fmt.Errorf("%s: unknown config key %q", path, key.String())
	}
	if err := cfg.validate(path); err != nil {
		return Config{}, err
	}
	cfg.Root = filepath.Dir(path)
	return cfg, nil
}

// LoadOrDefault loads an explicit config path, or searches upward from
// startDir, or falls back to defaults when nothing is found.
func LoadOrDefault(startDir, explicitPath string) (Config, error) {
	if explicitPath != "" {
		return LoadConfig(explicitPath)
	}
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

func (c Config) validate(path string) error {
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("%s: invalid [output].color %q (want auto, on, or off)", path, c.Output.Color)
	}
	switch c.Output.Format {
	case "pretty", "json":
	default:
		return fmt.Errorf("%s: invalid [output].format %q (want pretty or json)", path, c.Output.Format)
	}
	if c.Lint.MaxDiagnostics < 0 {
		return fmt.Errorf("%s: [lint].max_diagnostics must not be negative", path)
	}
	if c.Run.Jobs < 0 {
		return fmt.Errorf("%s: [run].jobs must not be negative", path)
	}
	return nil
}
