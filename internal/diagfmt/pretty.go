package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pyfix/internal/diag"
	"pyfix/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	codeColor = color.New(color.Faint)
	lineColor = color.New(color.FgBlue)
)

// Pretty renders diagnostics in a human-readable form, one block per
// diagnostic:
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//	  <line> | <source line>
//	         | <caret underline over the span>
//
// followed by notes and fixes when enabled. The bag is printed in its
// current order; call bag.Sort() first for deterministic output.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(file, fs, opts.PathMode),
		start.Line, start.Col,
		paint(opts.Color, severityColor(d.Severity), d.Severity.String()),
		paint(opts.Color, codeColor, d.Code.ID()),
		d.Message)

	printContext(w, file, d.Primary, start, end, d.Severity, opts)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			nStart, _ := fs.Resolve(note.Span)
			noteFile := fs.Get(note.Span.File)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
				formatPath(noteFile, fs, opts.PathMode), nStart.Line, nStart.Col, note.Msg)
		}
	}
	if opts.ShowFixes {
		for _, f := range d.Fixes {
			fmt.Fprintf(w, "  fix: %s (%s)\n", f.Title, f.Applicability.String())
			for _, edit := range f.Edits {
				switch {
				case edit.OldText == "":
					fmt.Fprintf(w, "    insert %q\n", edit.NewText)
				case edit.NewText == "":
					fmt.Fprintf(w, "    delete %q\n", edit.OldText)
				default:
					fmt.Fprintf(w, "    replace %q with %q\n", edit.OldText, edit.NewText)
				}
			}
		}
	}
}

// printContext shows the first source line the span touches with a caret
// underline aligned under the offending text.
func printContext(w io.Writer, file *source.File, sp source.Span, start, end source.LineCol, sev diag.Severity, opts PrettyOpts) {
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	line = strings.TrimRight(line, "\r")

	gutter := fmt.Sprintf("%5d", start.Line)
	fmt.Fprintf(w, "%s | %s\n", paint(opts.Color, lineColor, gutter), expandTabs(line))

	startCol := int(start.Col) - 1
	if startCol < 0 {
		startCol = 0
	}
	if startCol > len(line) {
		startCol = len(line)
	}
	endCol := len(line)
	if end.Line == start.Line {
		endCol = int(end.Col) - 1
		if endCol < startCol {
			endCol = startCol
		}
		if endCol > len(line) {
			endCol = len(line)
		}
	}

	pad := runewidth.StringWidth(expandTabs(line[:startCol]))
	width := runewidth.StringWidth(expandTabs(line[startCol:endCol]))
	if width < 1 {
		width = 1
	}
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s | %s%s\n",
		strings.Repeat(" ", 5),
		strings.Repeat(" ", pad),
		paint(opts.Color, severityColor(sev), underline))
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

func paint(enabled bool, c *color.Color, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "        ")
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
