// Package driver orchestrates the parse and lint pipeline over files and
// directories, including the result cache and the parallel directory walk.
package driver

import (
	"pyfix/internal/diag"
	"pyfix/internal/parser"
	"pyfix/internal/rules"
	"pyfix/internal/source"
)

// CheckOptions configures a lint run.
type CheckOptions struct {
	// MaxDiagnostics caps the per-file diagnostic count.
	MaxDiagnostics int
	// Rules is the active rule set. Nil means rules.All().
	Rules []rules.Rule
	// Cache, when non-nil, is consulted before linting and updated after.
	Cache *DiskCache
}

// CheckResult is the outcome of linting one file.
type CheckResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	// Cached is true when the diagnostics were served from the disk cache.
	Cached bool
}

func (o CheckOptions) activeRules() []rules.Rule {
	if o.Rules == nil {
		return rules.All()
	}
	return o.Rules
}

// CheckFile loads path into a fresh FileSet and lints it.
func CheckFile(path string, opts CheckOptions) (*source.FileSet, *CheckResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return fs, checkLoaded(fs, id, opts), nil
}

// checkLoaded lints a file already present in fs.
func checkLoaded(fs *source.FileSet, id source.FileID, opts CheckOptions) *CheckResult {
	file := fs.Get(id)
	active := opts.activeRules()
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &CheckResult{Path: file.Path, FileID: id, Bag: bag}

	var key Digest
	if opts.Cache != nil {
		key = CacheKey(file.Content, rules.Fingerprint(active))
		if cached, ok, err := opts.Cache.Get(key, id); err == nil && ok {
			for _, d := range cached {
				bag.Add(d)
			}
			res.Cached = true
			return res
		}
	}

	reporter := diag.BagReporter{Bag: bag}
	mod := parser.ParseFile(file, parser.Options{Reporter: reporter})
	rules.Run(&rules.Context{File: file, Module: mod, Reporter: reporter}, active)
	bag.Sort()

	// A truncated bag would poison the cache with a partial result.
	if opts.Cache != nil && bag.Len() < int(bag.Cap()) {
		_ = opts.Cache.Put(key, bag.Items())
	}
	return res
}
