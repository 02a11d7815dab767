package diag

import (
	"testing"

	"pyfix/internal/source"
)

func TestBagSortOrder(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevWarning, LntRedundantDictIndex, source.Span{File: 0, Start: 40, End: 50}, "later"))
	bag.Add(New(SevError, SynUnexpectedToken, source.Span{File: 0, Start: 10, End: 12}, "earlier"))
	bag.Add(New(SevWarning, LntRedundantDictIndex, source.Span{File: 0, Start: 10, End: 20}, "same start, wider"))

	bag.Sort()
	items := bag.Items()
	if items[0].Message != "earlier" {
		t.Fatalf("first = %q", items[0].Message)
	}
	if items[1].Message != "same start, wider" {
		t.Fatalf("second = %q", items[1].Message)
	}
	if items[2].Message != "later" {
		t.Fatalf("third = %q", items[2].Message)
	}
}

func TestBagCap(t *testing.T) {
	bag := NewBag(2)
	sp := source.Span{File: 0, Start: 0, End: 1}
	if !bag.Add(NewError(SynUnexpectedToken, sp, "one")) {
		t.Fatal("first add rejected")
	}
	if !bag.Add(NewError(SynUnexpectedToken, sp, "two")) {
		t.Fatal("second add rejected")
	}
	if bag.Add(NewError(SynUnexpectedToken, sp, "three")) {
		t.Fatal("third add should be rejected at cap")
	}
	if bag.Len() != 2 {
		t.Fatalf("len = %d, want 2", bag.Len())
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	sp := source.Span{File: 0, Start: 5, End: 9}
	bag.Add(NewWarning(LntRedundantDictIndex, sp, "dup"))
	bag.Add(NewWarning(LntRedundantDictIndex, sp, "dup"))
	bag.Add(NewWarning(LntRedundantDictIndex, source.Span{File: 0, Start: 6, End: 9}, "distinct"))

	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("len after dedup = %d, want 2", bag.Len())
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynUnexpectedToken, "SYN2001"},
		{LntRedundantDictIndex, "LNT3001"},
		{IOLoadFileError, "IO4001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Fatalf("ID(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
