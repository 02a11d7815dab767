// Package testkit holds shared helpers for structural checks in tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"pyfix/internal/ast"
	"pyfix/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants over a parsed
// module:
//  1. every node span points at the file it was parsed from
//  2. no span reaches past the end of the file content
//  3. no span is inverted (End before Start)
//
// An empty module (file of blank lines) is fine; a non-empty body must be
// covered by the module span.
func CheckSpanInvariants(mod *ast.Module, sf *source.File) error {
	if mod == nil || sf == nil {
		return fmt.Errorf("nil module or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	c := &spanChecker{fileID: sf.ID, limit: lenContent}
	ast.Walk(c, mod)
	if c.err != nil {
		return c.err
	}

	for _, stmt := range mod.Body {
		sp := stmt.Span()
		if sp.Start < mod.Loc.Start || sp.End > mod.Loc.End {
			return fmt.Errorf("statement span %v outside module span %v", sp, mod.Loc)
		}
	}
	return nil
}

type spanChecker struct {
	fileID source.FileID
	limit  uint32
	err    error
}

func (c *spanChecker) Visit(n ast.Node) ast.Visitor {
	if c.err != nil || n == nil {
		return nil
	}
	sp := n.Span()
	if sp.File != c.fileID {
		c.err = fmt.Errorf("node %T span points to file %d, want %d", n, sp.File, c.fileID)
		return nil
	}
	if sp.End < sp.Start {
		c.err = fmt.Errorf("node %T has inverted span %v", n, sp)
		return nil
	}
	if sp.End > c.limit {
		c.err = fmt.Errorf("node %T span %v ends beyond content (%d bytes)", n, sp, c.limit)
		return nil
	}
	return c
}
