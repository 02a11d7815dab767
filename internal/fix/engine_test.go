package fix

import (
	"os"
	"path/filepath"
	"testing"

	"pyfix/internal/diag"
	"pyfix/internal/source"
)

func writeTempFile(t *testing.T, content string) (string, *source.FileSet, source.FileID) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.py")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load temp file: %v", err)
	}
	return path, fs, id
}

func replaceDiag(id source.FileID, start, end uint32, newText, oldText string) diag.Diagnostic {
	span := source.Span{File: id, Start: start, End: end}
	return diag.NewWarning(diag.LntRedundantDictIndex, span, "unnecessary lookup of dictionary value by key").
		WithFix(ReplaceSpan("use existing variable", span, newText, oldText))
}

func TestApplyReplacesOnDisk(t *testing.T) {
	path, fs, id := writeTempFile(t, "print(d[k])\n")

	result, err := Apply(fs, []diag.Diagnostic{replaceDiag(id, 6, 10, "v", "d[k]")}, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(result.Applied) != 1 {
		t.Fatalf("got %d applied, want 1", len(result.Applied))
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "print(v)\n" {
		t.Fatalf("file content = %q, want print(v)", got)
	}
}

func TestApplyRemapsLaterSpans(t *testing.T) {
	// the first replacement grows the file; the second span must shift
	path, fs, id := writeTempFile(t, "a = d[k]\nb = d[k]\n")

	diags := []diag.Diagnostic{
		replaceDiag(id, 4, 8, "value", "d[k]"),
		replaceDiag(id, 13, 17, "value", "d[k]"),
	}
	result, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(result.Applied) != 2 {
		t.Fatalf("got %d applied, want 2 (skipped: %+v)", len(result.Applied), result.Skipped)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "a = value\nb = value\n" {
		t.Fatalf("file content = %q", got)
	}
}

func TestApplyGuardMismatchSkips(t *testing.T) {
	path, fs, id := writeTempFile(t, "print(d[k])\n")

	result, err := Apply(fs, []diag.Diagnostic{replaceDiag(id, 6, 10, "v", "stale text")}, ApplyOptions{Mode: ApplyModeAll})
	if err == nil {
		t.Fatalf("expected ErrNoFixes, got result %+v", result)
	}
	if len(result.Skipped) != 1 {
		t.Fatalf("got %d skipped, want 1", len(result.Skipped))
	}
	got, _ := os.ReadFile(path)
	if string(got) != "print(d[k])\n" {
		t.Fatalf("guard failure must leave the file alone, got %q", got)
	}
}

func TestApplyConflictingEditsSkipSecond(t *testing.T) {
	_, fs, id := writeTempFile(t, "print(d[k])\n")

	diags := []diag.Diagnostic{
		replaceDiag(id, 6, 10, "v", "d[k]"),
		replaceDiag(id, 6, 10, "other", "d[k]"),
	}
	result, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(result.Applied) != 1 || len(result.Skipped) != 1 {
		t.Fatalf("applied/skipped = %d/%d, want 1/1", len(result.Applied), len(result.Skipped))
	}
}

func TestApplyModeOnce(t *testing.T) {
	path, fs, id := writeTempFile(t, "a = d[k]\nb = d[k]\n")

	diags := []diag.Diagnostic{
		replaceDiag(id, 4, 8, "v", "d[k]"),
		replaceDiag(id, 13, 17, "v", "d[k]"),
	}
	result, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeOnce})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(result.Applied) != 1 {
		t.Fatalf("got %d applied, want 1", len(result.Applied))
	}
	got, _ := os.ReadFile(path)
	if string(got) != "a = v\nb = d[k]\n" {
		t.Fatalf("file content = %q", got)
	}
}

func TestApplyModeIDUnknown(t *testing.T) {
	_, fs, id := writeTempFile(t, "a = d[k]\n")

	result, err := Apply(fs, []diag.Diagnostic{replaceDiag(id, 4, 8, "v", "d[k]")},
		ApplyOptions{Mode: ApplyModeID, TargetID: "no-such-id"})
	if err == nil {
		t.Fatalf("expected ErrNoFixes")
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Reason != "fix id not found" {
		t.Fatalf("skipped = %+v", result.Skipped)
	}
}

func TestApplyDryRunLeavesDiskUntouched(t *testing.T) {
	path, fs, id := writeTempFile(t, "print(d[k])\n")

	result, err := Apply(fs, []diag.Diagnostic{replaceDiag(id, 6, 10, "v", "d[k]")},
		ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(result.FileChanges) != 1 {
		t.Fatalf("got %d file changes, want 1", len(result.FileChanges))
	}
	if string(result.FileChanges[0].Content) != "print(v)\n" {
		t.Fatalf("staged content = %q", result.FileChanges[0].Content)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "print(d[k])\n" {
		t.Fatalf("dry run modified the file: %q", got)
	}
}

func TestApplyVirtualFileSkipped(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("virtual.py", []byte("print(d[k])\n"))

	result, err := Apply(fs, []diag.Diagnostic{replaceDiag(id, 6, 10, "v", "d[k]")}, ApplyOptions{Mode: ApplyModeAll})
	if err == nil {
		t.Fatalf("expected ErrNoFixes for virtual-only input")
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Reason != "target file is virtual" {
		t.Fatalf("skipped = %+v", result.Skipped)
	}
}

func TestSortCandidatesBySpan(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte("abcdef"))
	later := replaceDiag(id, 4, 5, "x", "")
	earlier := replaceDiag(id, 1, 2, "y", "")

	cands := gatherCandidates([]diag.Diagnostic{later, earlier})
	sortCandidates(cands)
	if cands[0].diag.Primary.Start != 1 {
		t.Fatalf("sort did not order by span start: %+v", cands)
	}
}

func TestCumulativeDelta(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte("aaaa"))
	edits := []diag.TextEdit{
		{Span: source.Span{File: id, Start: 0, End: 2}, NewText: "xxxxx"}, // +3
		{Span: source.Span{File: id, Start: 4, End: 6}, NewText: ""},      // -2
	}
	cases := []struct {
		pos  int
		want int
	}{
		{0, 0},
		{2, 3},
		{4, 3},
		{6, 1},
		{10, 1},
	}
	for _, tc := range cases {
		if got := cumulativeDelta(edits, tc.pos); got != tc.want {
			t.Fatalf("cumulativeDelta(%d) = %d, want %d", tc.pos, got, tc.want)
		}
	}
}

func TestSpansConflict(t *testing.T) {
	mk := func(start, end uint32) diag.TextEdit {
		return diag.TextEdit{Span: source.Span{Start: start, End: end}}
	}
	cases := []struct {
		a, b diag.TextEdit
		want bool
	}{
		{mk(0, 4), mk(2, 6), true},
		{mk(0, 4), mk(4, 8), false},
		{mk(2, 2), mk(0, 4), true},
		{mk(2, 2), mk(2, 2), false},
		{mk(4, 4), mk(0, 4), false},
	}
	for i, tc := range cases {
		if got := spansConflict(tc.a, tc.b); got != tc.want {
			t.Fatalf("case %d: spansConflict = %v, want %v", i, got, tc.want)
		}
	}
}
