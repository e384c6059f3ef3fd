package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"glslu/internal/diag"
	"glslu/internal/source"
)

func sampleEntries(t *testing.T) (diag.Entries, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fs.AddVirtual("/home/user/shaders/main.frag", []byte("#version 450\nuniform float speed\nuniform foo bar;\n"))
	fs.SetBaseDir("/home/user")

	store := diag.NewSyntaxErrors()
	errs := diag.NewLineFileErrors()
	errs.Set(2, "/home/user/shaders/main.frag", "uniform line must finish by ;")
	store.SetSyntaxError(diag.ConcernUniform, diag.ConcernUniform, true, errs, nil)

	warns := diag.NewLineFileErrors()
	warns.Set(3, "/home/user/shaders/main.frag", "unsupported type foo")
	store.SetSyntaxError(diag.ConcernUniformWarning, diag.ConcernUniformWarning, false, warns, nil)

	compiled := diag.NewLineFileErrors()
	compiled.SetLine(2, "/home/user/shaders/main.frag", diag.ErrorLine{Fragments: []diag.ErrorLineFragment{
		{File: "/home/user/shaders/main.frag", Line: 2, Message: "main.frag:2:"},
		{Message: "syntax error"},
	}})
	store.SetSyntaxError(diag.ConcernCompilation, "Fragment Error", true, compiled, nil)
	return store.Entries(), fs
}

func TestPrettyPathModes(t *testing.T) {
	entries, fs := sampleEntries(t)
	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/shaders/main.frag:2: ERROR"},
		{"Relative path", PathModeRelative, "shaders/main.frag:2: ERROR"},
		{"Basename only", PathModeBasename, "main.frag:3: WARNING"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, entries, fs, PrettyOpts{PathMode: tt.mode})
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, buf.String())
			}
		})
	}
}

func TestPrettySourceAndSummary(t *testing.T) {
	entries, fs := sampleEntries(t)
	var buf bytes.Buffer
	Pretty(&buf, entries, fs, PrettyOpts{PathMode: PathModeBasename, ShowSource: true, ShowCategory: true, Summary: true})
	out := buf.String()

	for _, want := range []string{
		"main.frag:2: ERROR [Uniform error] uniform line must finish by ;",
		"main.frag:2: ERROR [Compilation error Fragment Error] main.frag:2: syntax error",
		"    2 | uniform float speed",
		"2 Errors, 1 Warning",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("colour codes written with Color=false")
	}
}

func TestPrettyColor(t *testing.T) {
	entries, fs := sampleEntries(t)
	var buf bytes.Buffer
	Pretty(&buf, entries, fs, PrettyOpts{Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI colour codes, got:\n%s", buf.String())
	}
}

func TestSummaryEmpty(t *testing.T) {
	if got := Summary(nil); got != "No Diagnostics" {
		t.Errorf("Summary(nil) = %q", got)
	}
}

func TestJSONOutput(t *testing.T) {
	entries, fs := sampleEntries(t)
	var buf bytes.Buffer
	if err := JSON(&buf, entries, fs, JSONOpts{PathMode: PathModeBasename, IncludeFragments: true, Max: 2}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 2 || out.Errors != 2 || out.Warnings != 1 {
		t.Fatalf("counts = %d/%d/%d", out.Count, out.Errors, out.Warnings)
	}
	var compiled *DiagnosticJSON
	for i := range out.Diagnostics {
		if out.Diagnostics[i].Category == "Fragment Error" {
			compiled = &out.Diagnostics[i]
		}
	}
	if compiled == nil {
		t.Fatalf("compilation entry missing: %+v", out.Diagnostics)
	}
	if len(compiled.Fragments) != 2 || compiled.Fragments[0].File != "main.frag" || compiled.Fragments[1].File != "" {
		t.Errorf("fragments = %+v", compiled.Fragments)
	}
}
