package diag

import (
	"slices"
	"strings"
)

// ErrorLineFragment is one piece of a compound diagnostic line.
// A fragment with a non-empty File is a jump-to-source reference.
type ErrorLineFragment struct {
	File    string
	Line    uint32
	Message string
}

// Clickable reports whether the fragment points at a source location.
func (f ErrorLineFragment) Clickable() bool {
	return f.File != ""
}

// ErrorLine is a diagnostic made of juxtaposed fragments.
type ErrorLine struct {
	Fragments []ErrorLineFragment
}

// NewErrorLine builds a single-fragment line.
func NewErrorLine(file string, line uint32, msg string) ErrorLine {
	return ErrorLine{Fragments: []ErrorLineFragment{{File: file, Line: line, Message: msg}}}
}

// Append adds the fragments of other after the existing ones.
func (l *ErrorLine) Append(other ErrorLine) {
	l.Fragments = append(l.Fragments, other.Fragments...)
}

// Messages returns the fragment texts in order.
func (l ErrorLine) Messages() []string {
	out := make([]string, 0, len(l.Fragments))
	for _, f := range l.Fragments {
		out = append(out, f.Message)
	}
	return out
}

func (l ErrorLine) String() string {
	return strings.Join(l.Messages(), " ")
}

func (l ErrorLine) clone() ErrorLine {
	return ErrorLine{Fragments: slices.Clone(l.Fragments)}
}

// LineFileErrors collects diagnostics for one producer call before they are
// committed to a SyntaxErrors store.
type LineFileErrors struct {
	byLine map[uint32]map[string]ErrorLine
}

// NewLineFileErrors returns an empty builder.
func NewLineFileErrors() *LineFileErrors {
	return &LineFileErrors{byLine: make(map[uint32]map[string]ErrorLine)}
}

// Set records a single-fragment message at (line, file).
func (e *LineFileErrors) Set(line uint32, file, msg string) {
	e.SetLine(line, file, NewErrorLine(file, line, msg))
}

// SetLine records a pre-built line. An existing (line, file) entry keeps its
// fragments and gets the new ones appended.
func (e *LineFileErrors) SetLine(line uint32, file string, el ErrorLine) {
	files, ok := e.byLine[line]
	if !ok {
		files = make(map[string]ErrorLine)
		e.byLine[line] = files
	}
	cur := files[file]
	cur.Append(el)
	files[file] = cur
}

// Get returns the entry recorded at (line, file).
func (e *LineFileErrors) Get(line uint32, file string) (ErrorLine, bool) {
	el, ok := e.byLine[line][file]
	return el, ok
}

// Len returns the number of (line, file) pairs.
func (e *LineFileErrors) Len() int {
	n := 0
	for _, files := range e.byLine {
		n += len(files)
	}
	return n
}

// Empty reports whether nothing was recorded.
func (e *LineFileErrors) Empty() bool {
	return e.Len() == 0
}

// Each visits every pair ordered by line then file.
func (e *LineFileErrors) Each(fn func(line uint32, file string, el ErrorLine)) {
	lines := make([]uint32, 0, len(e.byLine))
	for line := range e.byLine {
		lines = append(lines, line)
	}
	slices.Sort(lines)
	for _, line := range lines {
		files := e.byLine[line]
		names := make([]string, 0, len(files))
		for name := range files {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			fn(line, name, files[name])
		}
	}
}
