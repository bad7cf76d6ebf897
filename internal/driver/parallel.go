package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"sollint/internal/diag"
	"sollint/internal/source"
)

// FileEvent reports the completion of one source unit to an observer,
// e.g. a progress display. Events arrive from worker goroutines.
type FileEvent struct {
	Path  string
	Index int
	Total int
	Diags int
}

// FileObserver receives FileEvents during a batch run.
type FileObserver func(FileEvent)

// listSolFiles returns the sorted list of *.sol files under dir.
func listSolFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".sol") {
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

// SolFiles returns the sorted list of *.sol files under dir, the same
// set LintDir would process.
func SolFiles(dir string) ([]string, error) {
	return listSolFiles(dir)
}

// LintDir lints every *.sol file under dir in parallel.
func (e *Engine) LintDir(ctx context.Context, dir string, observer FileObserver) (*source.FileSet, []*FileResult, error) {
	files, err := listSolFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	results, err := e.lintPaths(ctx, fileSet, files, observer)
	return fileSet, results, err
}

// LintPaths lints an explicit list of files in parallel. Results come
// back ordered by path regardless of completion order.
func (e *Engine) LintPaths(ctx context.Context, paths []string, observer FileObserver) (*source.FileSet, []*FileResult, error) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	fileSet := source.NewFileSet()
	results, err := e.lintPaths(ctx, fileSet, sorted, observer)
	return fileSet, results, err
}

func (e *Engine) lintPaths(ctx context.Context, fileSet *source.FileSet, files []string, observer FileObserver) ([]*FileResult, error) {
	if len(files) == 0 {
		return nil, nil
	}

	// The FileSet is not safe for concurrent mutation, so all loads
	// happen up front; workers only read.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := e.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(e.opts.MaxDiagnostics)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevHigh,
					Code:     diag.CodeIOError,
					Message:  "failed to load file: " + loadErr.Error(),
					Primary:  source.Span{},
				})
				results[i] = &FileResult{Path: path, State: StateDone, Bag: bag}
			} else {
				results[i] = e.LintFile(fileSet, fileIDs[path])
			}

			if observer != nil {
				observer(FileEvent{
					Path:  path,
					Index: i,
					Total: len(files),
					Diags: results[i].Bag.Len(),
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// MergeBags flattens per-file results into one bag sorted by file path
// then span, the stable order expected by snapshot consumers.
func MergeBags(results []*FileResult) *diag.Bag {
	total := 0
	for _, r := range results {
		if r != nil {
			total += r.Bag.Len()
		}
	}
	merged := diag.NewBag(total)
	// Results are already ordered by path; bags are sorted per file.
	for _, r := range results {
		if r != nil {
			merged.Merge(r.Bag)
		}
	}
	return merged
}
