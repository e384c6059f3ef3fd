package driver

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"glslu/internal/diag"
)

type recordingProgress struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingProgress) OnEvent(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func TestScanDir(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.frag":      "#include \"common.glsl\"\nuniform float a;\n",
		"b.vert":      "#include \"common.glsl\"\nuniform float b\n",
		"common.glsl": "uniform vec3 c[2;\n",
		"notes.txt":   "uniform float ignored\n",
	})
	progress := &recordingProgress{}
	opts := ScanOptions{Extensions: []string{".frag", ".vert"}, Progress: progress}

	files, results, err := ScanDir(context.Background(), dir, opts, 2)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(files) != 2 || len(results) != 2 {
		t.Fatalf("expected two roots, got %v", files)
	}
	if filepath.Base(files[0]) != "a.frag" || filepath.Base(files[1]) != "b.vert" {
		t.Fatalf("files not sorted: %v", files)
	}

	short := diag.FormatShort(MergeEntries(results), dir)
	if strings.Count(short, "common.glsl:1") != 1 {
		t.Errorf("shared include must be reported once:\n%s", short)
	}
	if !strings.Contains(short, "error b.vert:2 [Uniform error]") {
		t.Errorf("missing b.vert error:\n%s", short)
	}

	done := 0
	for _, ev := range progress.events {
		if ev.Stage == StageCheck && (ev.Status == StatusDone || ev.Status == StatusError) {
			done++
		}
	}
	if done != 2 {
		t.Errorf("expected 2 final events, got %d", done)
	}
}

func TestScanDirCancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.frag": "uniform float a;\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := ScanDir(ctx, dir, ScanOptions{}, 1); err == nil {
		t.Fatal("expected context error")
	}
}

func TestLoadFailure(t *testing.T) {
	res := loadFailure("x/a.frag", context.DeadlineExceeded, nil)
	if !res.HasErrors() {
		t.Fatal("load failure must be an error")
	}
	got := diag.FormatShort(res.Entries(), "")
	if got != "error x/a.frag:0 [I/O error] failed to load file: context deadline exceeded" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestMergedFileSet(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.frag":      "#include \"common.glsl\"\nuniform float a;\n",
		"b.frag":      "#include \"common.glsl\"\n",
		"common.glsl": "uniform float c;\n",
	})
	_, results, err := ScanDir(context.Background(), dir, ScanOptions{}, 1)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	fs := MergedFileSet(dir, results)
	if fs.Len() != 3 {
		t.Fatalf("expected 3 distinct files, got %d", fs.Len())
	}
	f, ok := fs.GetByPath(filepath.Join(dir, "a.frag"))
	if !ok {
		t.Fatal("a.frag missing from merged set")
	}
	if got := f.GetLine(2); !strings.HasPrefix(got, "uniform float a;") {
		t.Fatalf("line 2 = %q", got)
	}
}
