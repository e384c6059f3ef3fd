package diagfmt

import (
	"encoding/json"
	"io"

	"golang.org/x/text/unicode/norm"

	"glslu/internal/diag"
	"glslu/internal/source"
)

// FragmentJSON is one piece of a compound diagnostic line.
type FragmentJSON struct {
	File    string `json:"file,omitempty"`
	Line    uint32 `json:"line,omitempty"`
	Message string `json:"message"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity  string         `json:"severity"`
	Concern   string         `json:"concern"`
	Category  string         `json:"category"`
	File      string         `json:"file"`
	Line      uint32         `json:"line"`
	Message   string         `json:"message"`
	Fragments []FragmentJSON `json:"fragments,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
// Errors and Warnings count every entry, including those cut by opts.Max.
func BuildDiagnosticsOutput(entries diag.Entries, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(entries))}
	for _, e := range entries {
		if e.Severity.IsError() {
			out.Errors++
		} else {
			out.Warnings++
		}
	}

	for _, e := range entries.Limit(opts.Max) {
		d := DiagnosticJSON{
			Severity: e.Severity.Label(),
			Concern:  e.Concern,
			Category: e.Category,
			File:     formatPath(e.File, fs, opts.PathMode),
			Line:     e.LineNo,
			Message:  norm.NFC.String(e.Line.String()),
		}
		if opts.IncludeFragments {
			for _, f := range e.Line.Fragments {
				fj := FragmentJSON{Line: f.Line, Message: norm.NFC.String(f.Message)}
				if f.Clickable() {
					fj.File = formatPath(f.File, fs, opts.PathMode)
				}
				d.Fragments = append(d.Fragments, fj)
			}
		}
		out.Diagnostics = append(out.Diagnostics, d)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes entries as an indented JSON document.
func JSON(w io.Writer, entries diag.Entries, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(entries, fs, opts))
}
