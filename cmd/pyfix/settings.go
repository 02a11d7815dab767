package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pyfix/internal/driver"
	"pyfix/internal/project"
	"pyfix/internal/rules"
)

// runSettings is the merged view of config file and command-line flags.
// Flags win over the manifest, the manifest wins over built-in defaults.
type runSettings struct {
	Config         project.Config
	Rules          []rules.Rule
	MaxDiagnostics int
	Jobs           int
	Cache          *driver.DiskCache
	Format         string
	Color          bool
}

func loadRunSettings(cmd *cobra.Command, target string) (*runSettings, error) {
	pf := cmd.Root().PersistentFlags()

	configPath, err := pf.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	startDir := target
	if info, statErr := os.Stat(target); statErr != nil || !info.IsDir() {
		startDir = filepath.Dir(target)
	}
	cfg, err := project.LoadOrDefault(startDir, configPath)
	if err != nil {
		return nil, err
	}

	maxDiagnostics, err := pf.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = cfg.Lint.MaxDiagnostics
	}

	jobs, err := pf.GetInt("jobs")
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = cfg.Run.Jobs
	}

	noCache, err := pf.GetBool("no-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	var cache *driver.DiskCache
	if cfg.Run.Cache && !noCache {
		// A broken cache dir degrades to uncached linting.
		cache, _ = driver.OpenDiskCache("pyfix")
	}

	colorMode, err := pf.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	if colorMode == "" {
		colorMode = cfg.Output.Color
	}
	var useColor bool
	switch colorMode {
	case "on":
		useColor = true
	case "off":
		useColor = false
	case "auto":
		useColor = isTerminal(os.Stdout)
	default:
		return nil, fmt.Errorf("unknown color value: %s", colorMode)
	}

	return &runSettings{
		Config:         cfg,
		Rules:          rules.Enabled(cfg.Lint.Disabled),
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		Cache:          cache,
		Format:         cfg.Output.Format,
		Color:          useColor,
	}, nil
}

func (s *runSettings) checkOptions() driver.CheckOptions {
	return driver.CheckOptions{
		MaxDiagnostics: s.MaxDiagnostics,
		Rules:          s.Rules,
		Cache:          s.Cache,
	}
}

// silentExit suppresses cobra's error output when diagnostics were already
// printed and only a non-zero exit code is needed.
func silentExit(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return fmt.Errorf("")
}
