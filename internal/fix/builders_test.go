package fix

import (
	"testing"

	"pyfix/internal/diag"
	"pyfix/internal/source"
)

func TestInsertTextBuildsZeroWidthEdit(t *testing.T) {
	span := source.Span{Start: 3, End: 3}
	fix := InsertText("add colon", span, ":")

	if len(fix.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(fix.Edits))
	}
	edit := fix.Edits[0]
	if edit.NewText != ":" || edit.OldText != "" {
		t.Fatalf("edit = %+v", edit)
	}
	if fix.Applicability != diag.FixApplicabilityAlwaysSafe {
		t.Fatalf("default applicability = %v", fix.Applicability)
	}
}

func TestDeleteSpanKeepsGuard(t *testing.T) {
	span := source.Span{Start: 9, End: 10}
	fix := DeleteSpan("remove semicolon", span, ";")

	edit := fix.Edits[0]
	if edit.NewText != "" {
		t.Fatalf("expected empty NewText for deletion, got %q", edit.NewText)
	}
	if edit.OldText != ";" {
		t.Fatalf("expected OldText ';', got %q", edit.OldText)
	}
}

func TestReplaceSpanOptions(t *testing.T) {
	span := source.Span{Start: 0, End: 4}
	fix := ReplaceSpan("use existing variable", span, "price", "d[k]",
		WithID("redundant-dict-index"),
		WithApplicability(diag.FixApplicabilityManualReview))

	if fix.ID != "redundant-dict-index" {
		t.Fatalf("id = %q", fix.ID)
	}
	if fix.Applicability != diag.FixApplicabilityManualReview {
		t.Fatalf("applicability override lost: %v", fix.Applicability)
	}
	if fix.Edits[0].NewText != "price" || fix.Edits[0].OldText != "d[k]" {
		t.Fatalf("edit = %+v", fix.Edits[0])
	}
}
