package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"glslu/internal/diag"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

const mainFrag = `#version 450
#include "common.glsl"
uniform(Colors:1) vec3(color) tint; // Tint
uniform float(0:1:0.5) speed
uniform foo(slider) bar;
#include "missing.glsl"
void main() {}
`

const commonGLSL = `#include "main.frag"
uniform float x[3;
uniform vec2(mouse) cursor;
`

func TestScanFileDiagnostics(t *testing.T) {
	dir := writeFiles(t, map[string]string{"main.frag": mainFrag, "common.glsl": commonGLSL})

	res, err := ScanFile(context.Background(), filepath.Join(dir, "main.frag"), ScanOptions{})
	if err != nil {
		t.Fatalf("ScanFile: %v", err)
	}
	if res.Session.Len() != 2 {
		t.Fatalf("expected 2 units (cycle scanned once), got %d", res.Session.Len())
	}
	if !res.HasErrors() {
		t.Fatal("expected errors")
	}

	short := diag.FormatShort(res.Entries(), dir)
	want := []string{
		"error common.glsl:2 [Uniform error] bad syntax, missing ] bad uniform syntax",
		"error main.frag:4 [Uniform error] uniform line must finish by ; bad uniform syntax",
		"warning main.frag:5 [Uniform warning] unsupported type foo unsupported widget slider",
		"error main.frag:6 [Include error] include file not found: missing.glsl",
	}
	for _, w := range want {
		if !strings.Contains(short, w) {
			t.Errorf("missing %q in:\n%s", w, short)
		}
	}

	uniforms := res.Uniforms()
	names := make([]string, 0, len(uniforms))
	for _, u := range uniforms {
		names = append(names, u.Name)
	}
	if strings.Join(names, ",") != "tint,bar,cursor" {
		t.Fatalf("uniforms = %v", names)
	}
	tint := uniforms[0]
	if tint.Section != "Colors" || tint.Order != 1 || tint.Widget != "color" || tint.Comment != "Tint" || tint.Line != 3 {
		t.Errorf("unexpected tint record %+v", tint)
	}
	if bar := uniforms[1]; bar.Uploadable {
		t.Error("foo is not a GPU type")
	}
}

func TestScanFileIncludeTreeQueries(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.frag":         "#include <lib/a.glsl>\nuniform float ok;\n",
		"shared/lib/a.glsl": "uniform float(time) t;\nuniform vec4 w;\n",
	})
	opts := ScanOptions{IncludeDirs: []string{filepath.Join(dir, "shared")}}

	res, err := ScanFile(context.Background(), filepath.Join(dir, "main.frag"), opts)
	if err != nil {
		t.Fatalf("ScanFile: %v", err)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %s", diag.FormatShort(res.Entries(), dir))
	}
	if len(res.Files) != 2 || res.Files[0].Includes[0].Resolved == "" {
		t.Fatalf("include not resolved: %+v", res.Files)
	}
	if res.Session.ToString(res.Root, true) != "" {
		t.Error("ToString must be empty without errors")
	}
}

func TestScanFileDepthLimit(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.frag": "#include \"a.glsl\"\n",
		"a.glsl":    "#include \"b.glsl\"\n",
		"b.glsl":    "uniform float b;\n",
	})
	res, err := ScanFile(context.Background(), filepath.Join(dir, "main.frag"), ScanOptions{MaxIncludeDepth: 1})
	if err != nil {
		t.Fatalf("ScanFile: %v", err)
	}
	short := diag.FormatShort(res.Entries(), dir)
	if !strings.Contains(short, "error a.glsl:1 [Include error] include depth limit 1 exceeded at b.glsl") {
		t.Fatalf("depth limit not reported:\n%s", short)
	}
	// a.glsl errors are not part of the owner's ToString
	if got := res.Session.ToString(res.Root, true); !strings.Contains(got, "depth limit") {
		t.Fatalf("ToString = %q", got)
	}
}

func TestScanFileMissingRoot(t *testing.T) {
	_, err := ScanFile(context.Background(), filepath.Join(t.TempDir(), "nope.frag"), ScanOptions{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestScanSourceBadInclude(t *testing.T) {
	res, err := ScanSource(context.Background(), "mem.frag", []byte("#include foo\nuniform float a;\n"), ScanOptions{})
	if err != nil {
		t.Fatalf("ScanSource: %v", err)
	}
	if got := diag.FormatShort(res.Entries(), ""); got != "error mem.frag:1 [Include error] bad #include syntax" {
		t.Fatalf("unexpected diagnostics %q", got)
	}
}

func TestScanFileCacheReplay(t *testing.T) {
	dir := writeFiles(t, map[string]string{"main.frag": "uniform float x\nuniform vec3(color) c;\n"})
	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	opts := ScanOptions{Cache: cache}
	path := filepath.Join(dir, "main.frag")

	first, err := ScanFile(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}
	second, err := ScanFile(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if first.Files[0].Cached || !second.Files[0].Cached {
		t.Fatalf("cache flags: first=%v second=%v", first.Files[0].Cached, second.Files[0].Cached)
	}
	a := diag.FormatShort(first.Entries(), dir)
	b := diag.FormatShort(second.Entries(), dir)
	if a != b || a == "" {
		t.Fatalf("replayed diagnostics differ:\n%s\n---\n%s", a, b)
	}
	if len(second.Uniforms()) != 1 || second.Uniforms()[0].File != first.Uniforms()[0].File {
		t.Fatalf("replayed uniforms %+v", second.Uniforms())
	}
}

func TestLineHelpers(t *testing.T) {
	tests := []struct {
		line    string
		uniform bool
		include string
		isInc   bool
	}{
		{"uniform float a;\n", true, "", false},
		{"  uniform(sec) float a;\n", true, "", false},
		{"uniforms float a;\n", false, "", false},
		{"// uniform float a;\n", false, "", false},
		{"#include \"a.glsl\"\n", false, "a.glsl", true},
		{"# include <lib/b.glsl>\n", false, "lib/b.glsl", true},
		{"#include <>\n", false, "", true},
		{"#version 450\n", false, "", false},
	}
	for _, tt := range tests {
		if got := isUniformLine(tt.line); got != tt.uniform {
			t.Errorf("isUniformLine(%q) = %v", tt.line, got)
		}
		name, isInc := parseInclude(tt.line)
		if name != tt.include || isInc != tt.isInc {
			t.Errorf("parseInclude(%q) = %q, %v", tt.line, name, isInc)
		}
	}
}
