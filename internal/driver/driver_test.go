package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pyfix/internal/diag"
	"pyfix/internal/source"
	"pyfix/internal/token"
)

const lintSample = "for name, price in prices.items():\n    total += prices[name]\n"

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	return path
}

func TestCheckFileReportsDictLookup(t *testing.T) {
	path := writeFile(t, t.TempDir(), "shop.py", lintSample)

	fs, res, err := CheckFile(path, CheckOptions{MaxDiagnostics: 100})
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	if res.Cached {
		t.Fatalf("fresh run reported as cached")
	}
	items := res.Bag.Items()
	if len(items) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(items), items)
	}
	d := items[0]
	if d.Code != diag.LntRedundantDictIndex || d.Severity != diag.SevWarning {
		t.Fatalf("got %s %s", d.Severity, d.Code.ID())
	}
	if got := fs.Snippet(d.Primary); got != "prices[name]" {
		t.Fatalf("primary span covers %q", got)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != "price" {
		t.Fatalf("unexpected fixes: %+v", d.Fixes)
	}
}

func TestCheckFileMissing(t *testing.T) {
	_, _, err := CheckFile(filepath.Join(t.TempDir(), "gone.py"), CheckOptions{MaxDiagnostics: 10})
	if err == nil {
		t.Fatalf("expected load error")
	}
}

func TestListPyFilesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.py", "x = 1\n")
	writeFile(t, dir, "a.py", "x = 1\n")
	writeFile(t, dir, "sub/c.py", "x = 1\n")
	writeFile(t, dir, "notes.txt", "not python\n")
	writeFile(t, dir, "__pycache__/d.py", "x = 1\n")
	writeFile(t, dir, ".venv/e.py", "x = 1\n")

	files, err := ListPyFiles(dir)
	if err != nil {
		t.Fatalf("ListPyFiles: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.py"),
		filepath.Join(dir, "b.py"),
		filepath.Join(dir, "sub", "c.py"),
	}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestCheckDirMergesInPathOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.py", lintSample)
	writeFile(t, dir, "a.py", "clean = True\n")
	writeFile(t, dir, "sub/c.py", lintSample)

	res, err := CheckDir(context.Background(), dir, DirOptions{
		CheckOptions: CheckOptions{MaxDiagnostics: 100},
		Jobs:         2,
	})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(res.Files) != 3 {
		t.Fatalf("got %d results, want 3", len(res.Files))
	}
	if filepath.Base(res.Files[0].Path) != "a.py" || filepath.Base(res.Files[2].Path) != "c.py" {
		t.Fatalf("results out of order: %s, %s, %s",
			res.Files[0].Path, res.Files[1].Path, res.Files[2].Path)
	}
	if got := res.Files[0].Bag.Len(); got != 0 {
		t.Fatalf("clean file produced %d diagnostics", got)
	}
	for _, i := range []int{1, 2} {
		if got := res.Files[i].Bag.Len(); got != 1 {
			t.Fatalf("file %s produced %d diagnostics, want 1", res.Files[i].Path, got)
		}
	}
	if res.HasErrors() {
		t.Fatalf("warnings misreported as errors")
	}
}

func TestCheckDirReportsUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.py", "x = 1\n")
	if err := os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "broken.py")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	res, err := CheckDir(context.Background(), dir, DirOptions{
		CheckOptions: CheckOptions{MaxDiagnostics: 10},
	})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(res.Files) != 2 {
		t.Fatalf("got %d results, want 2", len(res.Files))
	}
	broken := res.Files[0]
	if filepath.Base(broken.Path) != "broken.py" {
		t.Fatalf("unexpected order: %s", broken.Path)
	}
	items := broken.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOLoadFileError || items[0].Severity != diag.SevError {
		t.Fatalf("unexpected diagnostics: %v", items)
	}
	if got := res.FileSet.Get(items[0].Primary.File); got == nil || len(got.Content) != 0 {
		t.Fatalf("placeholder file not registered for %v", items[0].Primary)
	}
	if !res.HasErrors() {
		t.Fatalf("load failure not surfaced as error")
	}
}

func TestCheckDirEmpty(t *testing.T) {
	res, err := CheckDir(context.Background(), t.TempDir(), DirOptions{
		CheckOptions: CheckOptions{MaxDiagnostics: 10},
	})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(res.Files) != 0 {
		t.Fatalf("got %d results from empty dir", len(res.Files))
	}
}

func TestCheckDirUsesCacheOnSecondRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shop.py", lintSample)
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	opts := DirOptions{CheckOptions: CheckOptions{MaxDiagnostics: 100, Cache: cache}}

	first, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Files[0].Cached {
		t.Fatalf("first run served from cache")
	}

	second, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.Files[0].Cached {
		t.Fatalf("second run missed the cache")
	}
	a, b := first.Files[0].Bag.Items(), second.Files[0].Bag.Items()
	if len(a) != len(b) {
		t.Fatalf("cached run returned %d diagnostics, want %d", len(b), len(a))
	}
	for i := range a {
		if a[i].Code != b[i].Code || a[i].Primary != b[i].Primary || a[i].Message != b[i].Message {
			t.Fatalf("cached diagnostic %d differs: %+v vs %+v", i, b[i], a[i])
		}
		if len(a[i].Fixes) != len(b[i].Fixes) {
			t.Fatalf("cached diagnostic %d lost fixes", i)
		}
	}
}

func TestCacheKeyDependsOnContentAndFingerprint(t *testing.T) {
	base := CacheKey([]byte("x = 1\n"), "redundant-dict-index@LNT3001")
	if CacheKey([]byte("x = 2\n"), "redundant-dict-index@LNT3001") == base {
		t.Fatalf("content change did not change key")
	}
	if CacheKey([]byte("x = 1\n"), "") == base {
		t.Fatalf("fingerprint change did not change key")
	}
	if CacheKey([]byte("x = 1\n"), "redundant-dict-index@LNT3001") != base {
		t.Fatalf("key is not deterministic")
	}
}

func TestDiskCacheRebindsFileID(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	key := CacheKey([]byte("content"), "fp")
	in := []diag.Diagnostic{{
		Severity: diag.SevWarning,
		Code:     diag.LntRedundantDictIndex,
		Message:  "unnecessary lookup of dictionary value by key",
		Primary:  source.Span{File: 3, Start: 10, End: 22},
		Fixes: []diag.Fix{{
			ID:    "redundant-dict-index",
			Title: "use existing variable",
			Edits: []diag.TextEdit{{
				Span:    source.Span{File: 3, Start: 10, End: 22},
				NewText: "price",
				OldText: "prices[name]",
			}},
		}},
	}}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	out, ok, err := cache.Get(key, 7)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d diagnostics", len(out))
	}
	got := out[0]
	if got.Primary.File != 7 || got.Primary.Start != 10 || got.Primary.End != 22 {
		t.Fatalf("primary span not rebound: %+v", got.Primary)
	}
	if len(got.Fixes) != 1 || got.Fixes[0].Edits[0].Span.File != 7 {
		t.Fatalf("fix edit span not rebound: %+v", got.Fixes)
	}
	if got.Fixes[0].Edits[0].OldText != "prices[name]" {
		t.Fatalf("edit guard lost: %+v", got.Fixes[0].Edits[0])
	}
}

func TestDiskCacheMissAndCorruption(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	key := CacheKey([]byte("never stored"), "fp")

	if _, ok, err := cache.Get(key, 1); ok || err != nil {
		t.Fatalf("cold cache: ok=%v err=%v", ok, err)
	}

	// A truncated payload must read as a miss, not an error.
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte{0x00, 0x01}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok, err := cache.Get(key, 1); ok || err != nil {
		t.Fatalf("corrupt entry: ok=%v err=%v", ok, err)
	}
}

func TestNilDiskCacheIsInert(t *testing.T) {
	var cache *DiskCache
	key := CacheKey([]byte("x"), "fp")
	if err := cache.Put(key, nil); err != nil {
		t.Fatalf("nil Put: %v", err)
	}
	if _, ok, err := cache.Get(key, 1); ok || err != nil {
		t.Fatalf("nil Get: ok=%v err=%v", ok, err)
	}
}

func TestTokenizeCollectsToEOF(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.py", "x = 1\n")
	res, err := Tokenize(path, 10)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	kinds := make([]token.Kind, 0, len(res.Tokens))
	for _, tok := range res.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{token.Ident, token.Assign, token.IntLit, token.Newline, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("got kinds %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
}
