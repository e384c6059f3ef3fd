package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"glslu/internal/diag"
	"glslu/internal/observ"
	"glslu/internal/source"
	"glslu/internal/trace"
	"glslu/internal/uniform"
	"glslu/internal/unit"
)

// FileResult is the scan of one unit.
type FileResult struct {
	Path     string
	Unit     unit.ID
	Uniforms []Uniform
	Includes []Include
	Cached   bool
}

// ScanResult holds everything reached from one root shader.
type ScanResult struct {
	Path    string
	Root    unit.ID
	Session *unit.Session
	FileSet *source.FileSet
	Files   []FileResult
	Timing  *observ.Report
}

// Entries collects the diagnostics of the root and of its include tree.
func (r *ScanResult) Entries() diag.Entries {
	return r.Session.Collect(r.Root)
}

// HasErrors reports whether the include tree holds an error.
func (r *ScanResult) HasErrors() bool {
	return r.Session.HasAny(r.Root, true)
}

// Uniforms returns the uniforms of every scanned file in scan order.
func (r *ScanResult) Uniforms() []Uniform {
	var out []Uniform
	for _, f := range r.Files {
		out = append(out, f.Uniforms...)
	}
	return out
}

type scanner struct {
	ctx    context.Context
	timer  *observ.Timer
	opts   ScanOptions
	tracer trace.Tracer
	span   uint64
	fs     *source.FileSet
	sess   *unit.Session
	files  []FileResult
}

// ScanFile loads path and every file it includes, parses their uniform lines
// and records the diagnostics in a fresh session. Only failing to read path
// itself is returned as an error; everything else becomes a diagnostic.
func ScanFile(ctx context.Context, path string, opts ScanOptions) (*ScanResult, error) {
	fs := source.NewFileSetWithBase(filepath.Dir(path))
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return scanLoaded(ctx, fs, id, opts)
}

// ScanSource scans in-memory content named name. Includes are resolved
// relative to name's directory and opts.IncludeDirs.
func ScanSource(ctx context.Context, name string, content []byte, opts ScanOptions) (*ScanResult, error) {
	fs := source.NewFileSetWithBase(filepath.Dir(name))
	id := fs.AddVirtual(name, content)
	return scanLoaded(ctx, fs, id, opts)
}

func scanLoaded(ctx context.Context, fs *source.FileSet, id source.FileID, opts ScanOptions) (*ScanResult, error) {
	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}

	tracer := trace.FromContext(ctx)
	file := fs.Get(id)
	span := trace.Begin(tracer, trace.ScopePass, "scan", 0).WithExtra("root", file.Path)

	sc := &scanner{
		ctx:    ctx,
		opts:   opts,
		tracer: tracer,
		span:   span.ID(),
		timer:  timer,
		fs:     fs,
		sess:   unit.NewSession(unit.Observers{opts.Observer, unit.TraceObserver{Tracer: tracer}}),
	}

	root := sc.sess.Add(file.Path)
	err := sc.scanUnit(root, file, 0)
	timer.Note("parse", fmt.Sprintf("%d files", sc.sess.Len()))
	if err != nil {
		span.End(err.Error())
		return nil, err
	}

	res := &ScanResult{
		Path:    file.Path,
		Root:    root.ID,
		Session: sc.sess,
		FileSet: fs,
		Files:   sc.files,
	}
	if timer != nil {
		report := timer.Report()
		res.Timing = &report
	}
	span.WithExtra("units", strconv.Itoa(sc.sess.Len())).End("")
	return res, nil
}

func (sc *scanner) scanUnit(u *unit.Unit, file *source.File, depth int) error {
	if err := sc.ctx.Err(); err != nil {
		return err
	}
	span := trace.Begin(sc.tracer, trace.ScopeFile, "file", sc.span).WithExtra("path", u.File)

	res := FileResult{Path: u.File, Unit: u.ID}
	if payload, ok := sc.cached(file); ok {
		for _, d := range payload.Diags {
			u.SetSyntaxError(u.File, d.Concern, d.IsError, d.Message, d.Line)
		}
		for i := range payload.Uniforms {
			payload.Uniforms[i].File = u.File
		}
		res.Uniforms = payload.Uniforms
		res.Includes = payload.Includes
		res.Cached = true
	} else {
		rec := &recordingSink{target: u}
		stop := sc.timer.Start("parse")
		res.Uniforms, res.Includes = scanLines(u.File, file, rec)
		stop()
		sc.store(file, &DiskPayload{Uniforms: res.Uniforms, Includes: res.Includes, Diags: rec.diags})
	}

	idx := len(sc.files)
	sc.files = append(sc.files, res)

	for i, inc := range res.Includes {
		if inc.Name == "" {
			continue
		}
		resolved, err := sc.includeUnit(u, inc, depth)
		if err != nil {
			return err
		}
		sc.files[idx].Includes[i].Resolved = resolved
	}

	span.WithExtra("uniforms", strconv.Itoa(len(res.Uniforms))).End("")
	return nil
}

// includeUnit resolves one directive of u and scans the target when it is new.
// Only context cancellation is returned as an error.
func (sc *scanner) includeUnit(u *unit.Unit, inc Include, depth int) (string, error) {
	resolved, err := ResolveInclude(u.File, inc.Name, sc.opts.IncludeDirs)
	if err != nil {
		u.SetSyntaxError(u.File, diag.ConcernInclude, true, err.Error(), inc.Line)
		return "", nil
	}
	if _, seen := sc.sess.Lookup(resolved); seen {
		u.AddInclude(resolved)
		return resolved, nil
	}
	if depth+1 > sc.opts.maxDepth() {
		msg := fmt.Sprintf("include depth limit %d exceeded at %s", sc.opts.maxDepth(), inc.Name)
		u.SetSyntaxError(u.File, diag.ConcernInclude, true, msg, inc.Line)
		return "", nil
	}
	stop := sc.timer.Start("read")
	id, err := sc.fs.Load(resolved)
	stop()
	if err != nil {
		u.SetSyntaxError(u.File, diag.ConcernInclude, true, fmt.Sprintf("cannot read %s: %v", inc.Name, err), inc.Line)
		return "", nil
	}
	u.AddInclude(resolved)
	child := sc.sess.Add(resolved)
	return resolved, sc.scanUnit(child, sc.fs.Get(id), depth+1)
}

func (sc *scanner) cached(file *source.File) (DiskPayload, bool) {
	var payload DiskPayload
	if sc.opts.Cache == nil {
		return payload, false
	}
	defer sc.timer.Start("cache")()
	hit, err := sc.opts.Cache.Get(file.Hash, &payload)
	if err != nil {
		trace.Error(sc.tracer, "cache", err.Error())
		return payload, false
	}
	return payload, hit
}

func (sc *scanner) store(file *source.File, payload *DiskPayload) {
	if sc.opts.Cache == nil {
		return
	}
	defer sc.timer.Start("cache")()
	if err := sc.opts.Cache.Put(file.Hash, payload); err != nil {
		trace.Error(sc.tracer, "cache", err.Error())
	}
}

// scanLines runs the uniform parser over every uniform line of file and
// collects the include directives.
func scanLines(path string, file *source.File, sink diag.Sink) ([]Uniform, []Include) {
	var (
		uniforms []Uniform
		includes []Include
	)
	for n, line := range file.Lines() {
		if name, ok := parseInclude(line); ok {
			if name == "" {
				sink.SetSyntaxError(path, diag.ConcernInclude, true, "bad #include syntax", n)
			}
			includes = append(includes, Include{Name: name, Line: n})
			continue
		}
		if !isUniformLine(line) {
			continue
		}
		decl := uniform.Parse(line, n, sink)
		if !decl.IsOk() {
			continue
		}
		uniform.CheckSupport(&decl, sink)
		uniforms = append(uniforms, newUniform(path, &decl))
	}
	return uniforms, includes
}

// ResolveInclude finds name next to the including file, then in dirs.
func ResolveInclude(from, name string, dirs []string) (string, error) {
	var candidates []string
	if filepath.IsAbs(name) {
		candidates = []string{name}
	} else {
		candidates = append(candidates, filepath.Join(filepath.Dir(from), name))
		for _, dir := range dirs {
			candidates = append(candidates, filepath.Join(dir, name))
		}
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return filepath.ToSlash(filepath.Clean(c)), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrIncludeNotFound, name)
}
