package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"glslu/internal/diag"
	"glslu/internal/source"
)

type palette struct {
	err, warn, path, concern, gutter *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		path:    color.New(color.Bold),
		concern: color.New(color.FgCyan),
		gutter:  color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.path, p.concern, p.gutter} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	if sev.IsError() {
		return p.err
	}
	return p.warn
}

// Pretty пишет диагностики в человекочитаемом виде:
//
//	<path>:<line>: <SEV> [<concern>] <message>
//	   <line> | <source line>
//
// Entries are printed in the given order; callers sort them first.
func Pretty(w io.Writer, entries diag.Entries, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, e := range entries {
		path := formatPath(e.File, fs, opts.PathMode)
		loc := path
		if e.LineNo != diag.NoLine {
			loc = fmt.Sprintf("%s:%d", path, e.LineNo)
		}
		concern := strings.TrimSuffix(e.Concern, ":")
		if opts.ShowCategory && e.Category != "" && e.Category != e.Concern {
			concern += " " + e.Category
		}
		fmt.Fprintf(w, "%s: %s [%s] %s\n",
			p.path.Sprint(loc),
			p.severity(e.Severity).Sprint(e.Severity.String()),
			p.concern.Sprint(concern),
			e.Line.String(),
		)
		if !opts.ShowSource {
			continue
		}
		if text, ok := sourceLine(fs, e.File, e.LineNo); ok {
			gutter := fmt.Sprintf("%5d |", e.LineNo)
			fmt.Fprintf(w, "%s %s\n", p.gutter.Sprint(gutter), strings.TrimRight(text, " \t"))
		}
	}
	if opts.Summary {
		fmt.Fprintln(w, Summary(entries))
	}
}

// Summary returns a heading such as "2 Errors, 1 Warning".
func Summary(entries diag.Entries) string {
	errs, warns := 0, 0
	for _, e := range entries {
		if e.Severity.IsError() {
			errs++
		} else {
			warns++
		}
	}
	if errs == 0 && warns == 0 {
		return "No Diagnostics"
	}
	text := plural(errs, "error") + ", " + plural(warns, "warning")
	return cases.Title(language.English).String(text)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
