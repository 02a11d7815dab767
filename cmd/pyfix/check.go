package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pyfix/internal/diag"
	"pyfix/internal/diagfmt"
	"pyfix/internal/driver"
	"pyfix/internal/observ"
	"pyfix/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.py|directory>",
	Short: "Lint Python sources without modifying them",
	Long:  `Check parses Python files, runs the lint rules, and prints diagnostics with their available fixes`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "", "output format (pretty|json)")
	checkCmd.Flags().Bool("fix-preview", false, "include available fixes in output")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	settings, err := loadRunSettings(cmd, target)
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" {
		format = settings.Format
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	fixPreview, err := cmd.Flags().GetBool("fix-preview")
	if err != nil {
		return fmt.Errorf("failed to get fix-preview flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	lintIdx := timer.Begin("lint")
	fs, bags, hasErrors, err := collectDiagnostics(cmd, target, settings)
	if err != nil {
		return err
	}
	timer.End(lintIdx, fmt.Sprintf("files=%d", len(bags)))

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	renderIdx := timer.Begin("render")
	switch format {
	case "pretty":
		opts := diagfmt.PrettyOpts{
			Color:     settings.Color,
			PathMode:  pathMode,
			ShowNotes: withNotes,
			ShowFixes: fixPreview,
		}
		for _, bag := range bags {
			diagfmt.Pretty(os.Stdout, bag, fs, opts)
		}
	case "json":
		merged := mergeBags(bags)
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeFixes:     fixPreview,
		}
		if err := diagfmt.JSON(os.Stdout, merged, fs, opts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	timer.End(renderIdx, "")

	if summary := timer.Summary(); summary != "" {
		fmt.Fprint(os.Stderr, summary)
	}

	if hasErrors {
		return silentExit(cmd)
	}
	return nil
}

// collectDiagnostics lints a file or a directory tree and returns the
// per-file bags in path order.
func collectDiagnostics(cmd *cobra.Command, target string, settings *runSettings) (*source.FileSet, []*diag.Bag, bool, error) {
	isDir, err := driver.IsDir(target)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to stat path: %w", err)
	}

	if !isDir {
		fs, res, err := driver.CheckFile(target, settings.checkOptions())
		if err != nil {
			return nil, nil, false, fmt.Errorf("check failed: %w", err)
		}
		return fs, []*diag.Bag{res.Bag}, res.Bag.HasErrors(), nil
	}

	res, err := driver.CheckDir(cmd.Context(), target, driver.DirOptions{
		CheckOptions: settings.checkOptions(),
		Jobs:         settings.Jobs,
	})
	if err != nil {
		return nil, nil, false, fmt.Errorf("check failed: %w", err)
	}
	return res.FileSet, res.Bags(), res.HasErrors(), nil
}

func mergeBags(bags []*diag.Bag) *diag.Bag {
	total := 0
	for _, b := range bags {
		total += b.Len()
	}
	merged := diag.NewBag(total)
	for _, b := range bags {
		merged.Merge(b)
	}
	return merged
}
