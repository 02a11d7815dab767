package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"pyfix/internal/diag"
	"pyfix/internal/source"
)

// DirOptions configures a directory-wide lint run.
type DirOptions struct {
	CheckOptions
	// Jobs bounds the number of files linted concurrently.
	// Zero or negative means GOMAXPROCS.
	Jobs int
}

// DirResult is the outcome of linting a directory tree.
type DirResult struct {
	FileSet *source.FileSet
	// Files holds one result per linted file, in sorted path order.
	Files []*CheckResult
}

// Bags returns the per-file bags in path order.
func (r *DirResult) Bags() []*diag.Bag {
	bags := make([]*diag.Bag, len(r.Files))
	for i, f := range r.Files {
		bags[i] = f.Bag
	}
	return bags
}

// HasErrors reports whether any file produced an error diagnostic.
func (r *DirResult) HasErrors() bool {
	for _, f := range r.Files {
		if f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// ListPyFiles walks root and returns every .py file in sorted order.
// Dot-directories and __pycache__ are skipped.
func ListPyFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || name == "__pycache__") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(name, ".py") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckDir lints every .py file under root in parallel. Files that fail to
// load are reported as IO diagnostics instead of aborting the run, so one
// unreadable file never hides the rest of the tree.
func CheckDir(ctx context.Context, root string, opts DirOptions) (*DirResult, error) {
	files, err := ListPyFiles(root)
	if err != nil {
		return nil, err
	}
	fileSet := source.NewFileSetWithBase(root)
	result := &DirResult{FileSet: fileSet, Files: make([]*CheckResult, 0, len(files))}
	if len(files) == 0 {
		return result, nil
	}

	// Load sequentially so FileIDs are assigned in path order.
	type loaded struct {
		path string
		id   source.FileID
		err  error
	}
	entries := make([]loaded, len(files))
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			// Placeholder keeps the diagnostic span resolvable.
			id = fileSet.AddVirtual(path, nil)
		}
		entries[i] = loaded{path: path, id: id, err: err}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	results := make([]*CheckResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range entries {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e := entries[i]
			if e.err != nil {
				results[i] = loadErrorResult(e.path, e.id, e.err, opts.MaxDiagnostics)
				return nil
			}
			results[i] = checkLoaded(fileSet, e.id, opts.CheckOptions)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	result.Files = results
	return result, nil
}

func loadErrorResult(path string, id source.FileID, err error, maxDiagnostics int) *CheckResult {
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  fmt.Sprintf("failed to load %s: %v", filepath.Base(path), err),
		Primary:  source.Span{File: id},
	})
	return &CheckResult{Path: path, FileID: id, Bag: bag}
}

// IsDir reports whether path names a directory.
func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
