package source

import (
	"testing"
)

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "disjoint spans merge to hull",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 30, End: 40},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "contained span is a no-op",
			a:        Span{File: 1, Start: 10, End: 40},
			b:        Span{File: 1, Start: 15, End: 20},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "different file is ignored",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 2, Start: 0, End: 100},
			expected: Span{File: 1, Start: 10, End: 20},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Cover(tt.b)
			if got != tt.expected {
				t.Fatalf("Cover() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		out     string
		changed bool
	}{
		{"no carriage returns", "a\nb\n", "a\nb\n", false},
		{"windows endings", "a\r\nb\r\n", "a\nb\n", true},
		{"lone cr preserved", "a\rb", "a\rb", false},
		{"mixed", "a\r\nb\rc\n", "a\nb\rc\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := normalizeCRLF([]byte(tt.in))
			if string(got) != tt.out {
				t.Fatalf("normalizeCRLF(%q) = %q, want %q", tt.in, got, tt.out)
			}
			if changed != tt.changed {
				t.Fatalf("changed = %v, want %v", changed, tt.changed)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("demo.py", []byte("x = 1\ny = 2\n"))

	start, end := fs.Resolve(Span{File: id, Start: 6, End: 7})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("start = %+v, want line 2 col 1", start)
	}
	if end.Line != 2 || end.Col != 2 {
		t.Fatalf("end = %+v, want line 2 col 2", end)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("demo.py", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
		{0, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Fatalf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestSnippet(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("demo.py", []byte("prices[name]"))

	if got := fs.Snippet(Span{File: id, Start: 0, End: 12}); got != "prices[name]" {
		t.Fatalf("Snippet = %q", got)
	}
	if got := fs.Snippet(Span{File: id, Start: 7, End: 11}); got != "name" {
		t.Fatalf("Snippet = %q", got)
	}
	if got := fs.Snippet(Span{File: id, Start: 50, End: 60}); got != "" {
		t.Fatalf("Snippet out of range = %q, want empty", got)
	}
}
