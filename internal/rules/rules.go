// Package rules hosts the lint passes that run over a parsed module. Each
// rule walks the AST and reports diagnostics, optionally with attached
// fixes, through a diag.Reporter.
package rules

import (
	"sort"
	"strings"

	"pyfix/internal/ast"
	"pyfix/internal/diag"
	"pyfix/internal/source"
)

// Context carries everything a rule needs for one file.
type Context struct {
	File     *source.File
	Module   *ast.Module
	Reporter diag.Reporter
}

// Text returns the source text under a span.
func (c *Context) Text(sp source.Span) string {
	return string(c.File.Content[sp.Start:sp.End])
}

// Rule is one lint pass.
type Rule interface {
	// Code is the diagnostic code the rule reports under.
	Code() diag.Code
	// Name is the stable identifier used in config and cache keys.
	Name() string
	// Check runs the rule over ctx.Module.
	Check(ctx *Context)
}

// All returns every registered rule in registration order.
func All() []Rule {
	return []Rule{
		RedundantDictIndex{},
	}
}

// Enabled returns All minus the rules named in disabled.
func Enabled(disabled []string) []Rule {
	if len(disabled) == 0 {
		return All()
	}
	skip := make(map[string]struct{}, len(disabled))
	for _, name := range disabled {
		skip[name] = struct{}{}
	}
	var active []Rule
	for _, r := range All() {
		if _, ok := skip[r.Name()]; !ok {
			active = append(active, r)
		}
	}
	return active
}

// Fingerprint identifies an active rule set. Cached results keyed on it go
// stale as soon as the set changes.
func Fingerprint(active []Rule) string {
	parts := make([]string, 0, len(active))
	for _, r := range active {
		parts = append(parts, r.Name()+"@"+r.Code().ID())
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// Run applies every rule in active to the module.
func Run(ctx *Context, active []Rule) {
	for _, r := range active {
		r.Check(ctx)
	}
}
