package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pyfix/internal/diag"
	"pyfix/internal/fix"
	"pyfix/internal/source"
	"pyfix/internal/ui"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.py|directory>",
	Short: "Apply available fixes to Python sources",
	Long:  `Fix runs the lint rules and rewrites the source files according to the chosen strategy. By default every safe fix is applied.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe fixes (default)")
	fixCmd.Flags().Bool("once", false, "apply only the first available fix")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("interactive", false, "choose fixes in a terminal picker")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	interactive, err := cmd.Flags().GetBool("interactive")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}
	if interactive && (targetID != "" || applyOnce) {
		return fmt.Errorf("--interactive cannot be combined with --id or --once")
	}
	if interactive && !isTerminal(os.Stdout) {
		return fmt.Errorf("--interactive requires a terminal")
	}

	settings, err := loadRunSettings(cmd, target)
	if err != nil {
		return err
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	fs, bags, _, err := collectDiagnostics(cmd, target, settings)
	if err != nil {
		return err
	}
	diagnostics := mergeBags(bags).Items()

	opts := fix.ApplyOptions{Mode: fix.ApplyModeAll, DryRun: dryRun}
	switch {
	case targetID != "":
		opts.Mode = fix.ApplyModeID
		opts.TargetID = targetID
	case applyOnce:
		opts.Mode = fix.ApplyModeOnce
	case interactive:
		ids, cancelled, err := pickFixes(fs, diagnostics)
		if err != nil {
			return err
		}
		if cancelled {
			fmt.Fprintln(os.Stdout, "Cancelled, no fixes applied.")
			return nil
		}
		if len(ids) == 0 {
			fmt.Fprintln(os.Stdout, "Nothing selected, no fixes applied.")
			return nil
		}
		opts.Mode = fix.ApplyModeID
		opts.TargetIDs = ids
	}

	res, applyErr := fix.Apply(fs, diagnostics, opts)
	return reportApplyResult(res, applyErr, dryRun)
}

// pickFixes runs the interactive picker over every candidate fix.
func pickFixes(fs *source.FileSet, diagnostics []diag.Diagnostic) (ids []string, cancelled bool, err error) {
	candidates := fix.Candidates(diagnostics)
	if len(candidates) == 0 {
		return nil, false, nil
	}
	items := make([]ui.FixItem, 0, len(candidates))
	for _, cand := range candidates {
		items = append(items, ui.FixItem{
			ID:       cand.Fix.ID,
			Title:    cand.Fix.Title,
			Location: formatSpanLocation(fs, cand.Diag.Primary),
			Detail:   formatEditDetail(cand.Fix),
			Safe:     cand.Fix.Applicability == diag.FixApplicabilityAlwaysSafe,
		})
	}

	program := tea.NewProgram(ui.NewPickerModel(items), tea.WithOutput(os.Stdout))
	final, err := program.Run()
	if err != nil {
		return nil, false, fmt.Errorf("picker failed: %w", err)
	}
	ids = ui.SelectedIDs(final)
	if ids == nil {
		return nil, true, nil
	}
	return ids, false, nil
}

func formatSpanLocation(fs *source.FileSet, sp source.Span) string {
	file := fs.Get(sp.File)
	if file == nil {
		return "(unknown location)"
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", file.FormatPath("auto", fs.BaseDir()), start.Line, start.Col)
}

func formatEditDetail(f diag.Fix) string {
	if len(f.Edits) == 0 {
		return ""
	}
	e := f.Edits[0]
	if e.OldText == "" {
		return fmt.Sprintf("insert %q", e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("delete %q", e.OldText)
	}
	return fmt.Sprintf("%s -> %s", e.OldText, e.NewText)
}

func reportApplyResult(res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		fmt.Fprintf(os.Stdout, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(os.Stdout, "  %s [%s] %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability.String())
		}
	}

	if len(res.FileChanges) > 0 && !dryRun {
		fmt.Fprintln(os.Stdout, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(os.Stdout, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(os.Stdout, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(os.Stdout, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(os.Stdout, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(os.Stdout, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}
	if len(res.Applied) == 0 {
		fmt.Fprintln(os.Stdout, "No fixes applied.")
	}
	return nil
}
