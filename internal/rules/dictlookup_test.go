package rules_test

import (
	"testing"

	"pyfix/internal/diag"
	"pyfix/internal/fix"
	"pyfix/internal/parser"
	"pyfix/internal/rules"
	"pyfix/internal/source"
)

func lint(t *testing.T, src string) (*diag.Bag, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	file := fs.Get(id)

	parseBag := diag.NewBag(32)
	mod := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: parseBag}})
	if parseBag.Len() != 0 {
		t.Fatalf("parse errors: %v", parseBag.Items())
	}

	bag := diag.NewBag(32)
	ctx := &rules.Context{File: file, Module: mod, Reporter: diag.BagReporter{Bag: bag}}
	rules.Run(ctx, rules.All())
	return bag, file
}

func lintTexts(t *testing.T, src string) []string {
	t.Helper()
	bag, file := lint(t, src)
	var texts []string
	for _, d := range bag.Items() {
		if d.Code != diag.LntRedundantDictIndex {
			t.Fatalf("unexpected code %s", d.Code.ID())
		}
		texts = append(texts, string(file.Content[d.Primary.Start:d.Primary.End]))
	}
	return texts
}

func TestDictIndexBasicLoop(t *testing.T) {
	src := "for name, price in prices.items():\n    total += prices[name]\n"
	bag, file := lint(t, src)
	if bag.Len() != 1 {
		t.Fatalf("got %d diagnostics, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if d.Severity != diag.SevWarning {
		t.Fatalf("severity = %v, want warning", d.Severity)
	}
	if d.Message != "unnecessary lookup of dictionary value by key" {
		t.Fatalf("message = %q", d.Message)
	}
	if got := string(file.Content[d.Primary.Start:d.Primary.End]); got != "prices[name]" {
		t.Fatalf("primary span = %q, want prices[name]", got)
	}
	if len(d.Fixes) != 1 {
		t.Fatalf("got %d fixes, want 1", len(d.Fixes))
	}
	fix := d.Fixes[0]
	if fix.Title != "use existing variable" {
		t.Fatalf("fix title = %q", fix.Title)
	}
	if fix.Applicability != diag.FixApplicabilityAlwaysSafe {
		t.Fatalf("applicability = %v, want always-safe", fix.Applicability)
	}
	edit := fix.Edits[0]
	if edit.NewText != "price" {
		t.Fatalf("replacement = %q, want price", edit.NewText)
	}
	if edit.OldText != "prices[name]" {
		t.Fatalf("old text guard = %q, want prices[name]", edit.OldText)
	}
}

func TestDictIndexMultipleHits(t *testing.T) {
	src := "for k, v in d.items():\n    print(d[k])\n    use(d[k], v)\n"
	texts := lintTexts(t, src)
	if len(texts) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(texts))
	}
}

func TestDictIndexWildcardSuppresses(t *testing.T) {
	srcs := []string{
		"for _, v in d.items():\n    print(d[_])\n",
		"for k, _ in d.items():\n    print(d[k])\n",
	}
	for _, src := range srcs {
		if texts := lintTexts(t, src); len(texts) != 0 {
			t.Fatalf("wildcard target still reported %v in %q", texts, src)
		}
	}
}

func TestDictIndexArityGuards(t *testing.T) {
	srcs := []string{
		// three-name target
		"for a, b, c in d.items():\n    print(d[a])\n",
		// single-name target
		"for kv in d.items():\n    print(d[kv])\n",
		// arguments on the call
		"for k, v in d.items(1):\n    print(d[k])\n",
		"for k, v in d.items(x=1):\n    print(d[k])\n",
		// wrong method
		"for k, v in d.keys():\n    print(d[k])\n",
		// receiver is not a bare name
		"for k, v in a.b.items():\n    print(a.b[k])\n",
		// iterating something else entirely
		"for k, v in pairs:\n    print(d[k])\n",
	}
	for _, src := range srcs {
		if texts := lintTexts(t, src); len(texts) != 0 {
			t.Fatalf("non-matching header still reported %v in %q", texts, src)
		}
	}
}

func TestDictIndexRequiresExactNames(t *testing.T) {
	srcs := []string{
		// different mapping
		"for k, v in d.items():\n    print(other[k])\n",
		// different key
		"for k, v in d.items():\n    print(d[j])\n",
		// key expression, not a bare name
		"for k, v in d.items():\n    print(d[k + 1])\n",
		// slice, not an index
		"for k, v in d.items():\n    print(d[k:1])\n",
	}
	for _, src := range srcs {
		if texts := lintTexts(t, src); len(texts) != 0 {
			t.Fatalf("non-matching subscript still reported %v in %q", texts, src)
		}
	}
}

func TestDictIndexWriteHaltsLaterMatches(t *testing.T) {
	src := "for k, v in d.items():\n" +
		"    print(d[k])\n" +
		"    d[k] = 0\n" +
		"    print(d[k])\n"
	texts := lintTexts(t, src)
	if len(texts) != 1 {
		t.Fatalf("got %d diagnostics, want 1 (only before the write)", len(texts))
	}
}

func TestDictIndexAugAssignTargetHalts(t *testing.T) {
	src := "for k, v in d.items():\n    d[k] += 1\n    print(d[k])\n"
	if texts := lintTexts(t, src); len(texts) != 0 {
		t.Fatalf("write via += still reported %v", texts)
	}
}

func TestDictIndexAnnAssignHalts(t *testing.T) {
	src := "for k, v in d.items():\n    d[k]: int = 0\n    print(d[k])\n"
	if texts := lintTexts(t, src); len(texts) != 0 {
		t.Fatalf("annotated write still reported %v", texts)
	}
	// a value-less annotation is not a write
	src = "for k, v in d.items():\n    d[k]: int\n    print(d[k])\n"
	if texts := lintTexts(t, src); len(texts) != 1 {
		t.Fatalf("bare annotation halted the scan: %v", texts)
	}
}

func TestDictIndexWriteRHSStillScanned(t *testing.T) {
	// the RHS of the halting write is visited, but the halt lands first
	src := "for k, v in d.items():\n    d[k] = d[k] + 1\n"
	if texts := lintTexts(t, src); len(texts) != 0 {
		t.Fatalf("RHS of halting write reported %v", texts)
	}
}

func TestDictIndexWriteInBranchHaltsLexically(t *testing.T) {
	// no control-flow reasoning: the branch write still halts what follows
	src := "for k, v in d.items():\n" +
		"    if cond:\n" +
		"        d[k] = 0\n" +
		"    print(d[k])\n"
	if texts := lintTexts(t, src); len(texts) != 0 {
		t.Fatalf("lexically later lookup reported %v", texts)
	}
}

func TestDictIndexNestedSubscriptNotReported(t *testing.T) {
	// subscripts are terminal for the scan, so a lookup buried inside
	// another subscript expression stays unreported
	src := "for k, v in d.items():\n    print(x[d[k]])\n"
	if texts := lintTexts(t, src); len(texts) != 0 {
		t.Fatalf("lookup inside foreign subscript reported %v", texts)
	}
	src = "for k, v in d.items():\n    print(d[d[k]])\n"
	if texts := lintTexts(t, src); len(texts) != 0 {
		t.Fatalf("lookup inside self subscript reported %v", texts)
	}
}

func TestDictIndexElseBlockScanned(t *testing.T) {
	src := "for k, v in d.items():\n    pass\nelse:\n    print(d[k])\n"
	texts := lintTexts(t, src)
	if len(texts) != 1 {
		t.Fatalf("got %d diagnostics in else block, want 1", len(texts))
	}
}

func TestDictIndexHaltCarriesIntoElse(t *testing.T) {
	src := "for k, v in d.items():\n    d[k] = 0\nelse:\n    print(d[k])\n"
	if texts := lintTexts(t, src); len(texts) != 0 {
		t.Fatalf("halt did not carry into else: %v", texts)
	}
}

func TestDictIndexParenthesizedTarget(t *testing.T) {
	src := "for (k, v) in d.items():\n    print(d[k])\n"
	texts := lintTexts(t, src)
	if len(texts) != 1 {
		t.Fatalf("parenthesized target missed: got %d, want 1", len(texts))
	}
}

func TestDictIndexListComp(t *testing.T) {
	src := "xs = [d[k] for k, v in d.items()]\n"
	texts := lintTexts(t, src)
	if len(texts) != 1 || texts[0] != "d[k]" {
		t.Fatalf("list comprehension: got %v, want [d[k]]", texts)
	}
}

func TestDictIndexCompFilters(t *testing.T) {
	src := "xs = [v for k, v in d.items() if d[k] > 0]\n"
	texts := lintTexts(t, src)
	if len(texts) != 1 {
		t.Fatalf("comprehension filter: got %d, want 1", len(texts))
	}
}

func TestDictIndexDictCompValueOnly(t *testing.T) {
	src := "m = {k: d[k] for k, v in d.items()}\n"
	texts := lintTexts(t, src)
	if len(texts) != 1 {
		t.Fatalf("dict comprehension value: got %d, want 1", len(texts))
	}
}

func TestDictIndexGeneratorExp(t *testing.T) {
	src := "total = sum(d[k] for k, v in d.items())\n"
	texts := lintTexts(t, src)
	if len(texts) != 1 {
		t.Fatalf("generator expression: got %d, want 1", len(texts))
	}
}

func TestDictIndexTwoMatchingClauses(t *testing.T) {
	// both clauses bind through .items(); each scans the element on its own
	src := "xs = [a[i] for i, x in a.items() for j, y in a.items()]\n"
	texts := lintTexts(t, src)
	if len(texts) != 1 {
		t.Fatalf("got %d diagnostics, want 1 (only the first clause matches a[i])", len(texts))
	}
}

func TestDictIndexNestedLoops(t *testing.T) {
	src := "for k, v in d.items():\n" +
		"    for k2, v2 in e.items():\n" +
		"        use(d[k], e[k2])\n"
	texts := lintTexts(t, src)
	if len(texts) != 2 {
		t.Fatalf("nested loops: got %d diagnostics, want 2", len(texts))
	}
}

func TestDictIndexAsyncFor(t *testing.T) {
	src := "async def f():\n    async for k, v in d.items():\n        print(d[k])\n"
	texts := lintTexts(t, src)
	if len(texts) != 1 {
		t.Fatalf("async for: got %d, want 1", len(texts))
	}
}

func TestDictIndexNoDescentIntoMatch(t *testing.T) {
	// d[k] nested inside another expression is still one report
	src := "for k, v in d.items():\n    use(f(d[k]) + 1)\n"
	texts := lintTexts(t, src)
	if len(texts) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(texts))
	}
}

func TestDictIndexFixesAreIdempotent(t *testing.T) {
	src := "for name, price in prices.items():\n" +
		"    total += prices[name]\n" +
		"    print(prices[name], price)\n"

	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	file := fs.Get(id)
	mod := parser.ParseFile(file, parser.Options{})

	bag := diag.NewBag(32)
	ctx := &rules.Context{File: file, Module: mod, Reporter: diag.BagReporter{Bag: bag}}
	rules.Run(ctx, rules.All())
	if bag.Len() != 2 {
		t.Fatalf("got %d diagnostics before fixing, want 2", bag.Len())
	}

	result, err := fix.Apply(fs, bag.Items(), fix.ApplyOptions{Mode: fix.ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(result.FileChanges) != 1 {
		t.Fatalf("got %d file changes, want 1", len(result.FileChanges))
	}
	fixed := string(result.FileChanges[0].Content)
	want := "for name, price in prices.items():\n" +
		"    total += price\n" +
		"    print(price, price)\n"
	if fixed != want {
		t.Fatalf("fixed content = %q, want %q", fixed, want)
	}

	// a second pass over the fixed source finds nothing
	if texts := lintTexts(t, fixed); len(texts) != 0 {
		t.Fatalf("fixed source still reports %v", texts)
	}
}

func TestFingerprintStable(t *testing.T) {
	a := rules.Fingerprint(rules.All())
	b := rules.Fingerprint(rules.All())
	if a != b || a == "" {
		t.Fatalf("fingerprint unstable: %q vs %q", a, b)
	}
	if c := rules.Fingerprint(rules.Enabled([]string{"redundant-dict-index"})); c == a {
		t.Fatalf("disabling a rule must change the fingerprint")
	}
}
