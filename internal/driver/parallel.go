package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"strconv"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"glslu/internal/diag"
	"glslu/internal/source"
	"glslu/internal/trace"
	"glslu/internal/unit"
)

// ListShaderFiles возвращает отсортированный список шейдеров в директории.
func ListShaderFiles(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// детерминированный порядок
	slices.Sort(files)
	return files, nil
}

// ScanDir scans every shader under dir as its own root, jobs at a time.
// Each root gets its own session, so an include shared by several roots is
// scanned once per root. A root that cannot be read yields a result holding
// a single I/O diagnostic. results[i] belongs to files[i].
func ScanDir(ctx context.Context, dir string, opts ScanOptions, jobs int) (files []string, results []*ScanResult, err error) {
	files, err = ListShaderFiles(dir, opts.extensions())
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return files, nil, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "scan_dir", 0).WithExtra("dir", dir)
	defer span.End("")

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageScan, Status: StatusQueued})
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results = make([]*ScanResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			emit(opts.Progress, Event{File: path, Stage: StageScan, Status: StatusWorking})

			res, err := ScanFile(gctx, path, opts)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				res = loadFailure(path, err, opts.Observer)
			}
			results[i] = res

			emit(opts.Progress, Event{File: path, Stage: StageCheck, Status: StatusWorking})
			status := StatusDone
			if res.HasErrors() {
				status = StatusError
			}
			emit(opts.Progress, Event{File: path, Stage: StageCheck, Status: status, Elapsed: time.Since(start)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return files, results, err
	}
	span.WithExtra("files", strconv.Itoa(len(files)))
	return files, results, nil
}

// loadFailure builds the result of a root that could not be read.
func loadFailure(path string, loadErr error, obs diag.Observer) *ScanResult {
	sess := unit.NewSession(obs)
	u := sess.Add(filepath.ToSlash(filepath.Clean(path)))
	u.SetSyntaxError(u.File, diag.ConcernIO, true, "failed to load file: "+loadErr.Error(), diag.NoLine)
	return &ScanResult{
		Path:    u.File,
		Root:    u.ID,
		Session: sess,
		FileSet: source.NewFileSetWithBase(filepath.Dir(path)),
	}
}

// MergeEntries gathers the diagnostics of several roots. A file included by
// several roots is reported once.
func MergeEntries(results []*ScanResult) diag.Entries {
	var all diag.Entries
	for _, r := range results {
		if r != nil {
			all = append(all, r.Entries()...)
		}
	}
	all = all.Dedup()
	all.Sort()
	return all
}

// MergedFileSet gathers the files loaded by several roots into one set based
// at dir, so that renderers can show source lines for merged entries.
func MergedFileSet(dir string, results []*ScanResult) *source.FileSet {
	out := source.NewFileSetWithBase(dir)
	for _, r := range results {
		if r == nil || r.FileSet == nil {
			continue
		}
		for i := 0; i < r.FileSet.Len(); i++ {
			f := r.FileSet.Get(source.FileID(i))
			if f == nil {
				continue
			}
			if _, ok := out.GetByPath(f.Path); ok {
				continue
			}
			out.Add(f.Path, f.Content, f.Flags)
		}
	}
	return out
}
