package diag

import (
	"slices"
	"strings"
)

type (
	lineMap     map[uint32]ErrorLine
	fileMap     map[string]lineMap
	categoryMap map[string]fileMap
	severityMap map[bool]categoryMap
)

// SyntaxErrors is the durable diagnostics store of one compile unit:
// concern -> is_error -> category -> file -> line -> ErrorLine.
//
// The store is not safe for concurrent use; each unit owns its own instance.
type SyntaxErrors struct {
	byConcern   map[string]severityMap
	hasErrors   bool
	hasWarnings bool
}

// NewSyntaxErrors returns an empty store.
func NewSyntaxErrors() *SyntaxErrors {
	return &SyntaxErrors{byConcern: make(map[string]severityMap)}
}

// SetSyntaxError commits every (line, file) pair of errs under
// concern/isError/category. Lines already present get the new fragments
// appended. obs, when non-nil, is called once per pair.
func (s *SyntaxErrors) SetSyntaxError(concern, category string, isError bool, errs *LineFileErrors, obs Observer) {
	if errs == nil || errs.Empty() {
		return
	}
	if s.byConcern == nil {
		s.byConcern = make(map[string]severityMap)
	}
	sev, ok := s.byConcern[concern]
	if !ok {
		sev = make(severityMap)
		s.byConcern[concern] = sev
	}
	cats, ok := sev[isError]
	if !ok {
		cats = make(categoryMap)
		sev[isError] = cats
	}
	files, ok := cats[category]
	if !ok {
		files = make(fileMap)
		cats[category] = files
	}

	label := SeverityOf(isError).Label()
	errs.Each(func(line uint32, file string, el ErrorLine) {
		lines, ok := files[file]
		if !ok {
			lines = make(lineMap)
			files[file] = lines
		}
		cur := lines[line]
		cur.Append(el)
		lines[line] = cur
		if obs != nil {
			obs.OnDiagnostic(concern, label, category, el.clone())
		}
	})

	if isError {
		s.hasErrors = true
	} else {
		s.hasWarnings = true
	}
}

// Clear drops every diagnostic and resets both flags.
func (s *SyntaxErrors) Clear() {
	s.byConcern = make(map[string]severityMap)
	s.hasErrors = false
	s.hasWarnings = false
}

// ClearConcern drops one concern and recomputes the flags from what is left.
func (s *SyntaxErrors) ClearConcern(concern string) {
	delete(s.byConcern, concern)
	s.hasErrors = s.has(true)
	s.hasWarnings = s.has(false)
}

// HasErrors reports whether an error was recorded since the last Clear.
func (s *SyntaxErrors) HasErrors() bool { return s.hasErrors }

// HasWarnings reports whether a warning was recorded since the last Clear.
func (s *SyntaxErrors) HasWarnings() bool { return s.hasWarnings }

// Has reports whether any non-empty bucket of the given severity exists.
func (s *SyntaxErrors) Has(isError bool) bool {
	return s.has(isError)
}

func (s *SyntaxErrors) has(isError bool) bool {
	for _, sev := range s.byConcern {
		for _, files := range sev[isError] {
			for _, lines := range files {
				if len(lines) > 0 {
					return true
				}
			}
		}
	}
	return false
}

// Empty reports whether the store holds nothing at all.
func (s *SyntaxErrors) Empty() bool {
	return !s.has(true) && !s.has(false)
}

// Get returns the line stored at the exact key.
func (s *SyntaxErrors) Get(concern, category string, isError bool, file string, line uint32) (ErrorLine, bool) {
	el, ok := s.byConcern[concern][isError][category][file][line]
	return el, ok
}

// Concerns returns the concerns currently stored, sorted.
func (s *SyntaxErrors) Concerns() []string {
	out := make([]string, 0, len(s.byConcern))
	for c := range s.byConcern {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Text concatenates the messages of the given severity, one line per entry.
func (s *SyntaxErrors) Text(isError bool) string {
	var b strings.Builder
	for _, e := range s.Entries() {
		if e.Severity.IsError() != isError {
			continue
		}
		b.WriteString(e.Line.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Entries flattens the store into a sorted list.
func (s *SyntaxErrors) Entries() Entries {
	var out Entries
	for concern, sev := range s.byConcern {
		for isError, cats := range sev {
			for category, files := range cats {
				for file, lines := range files {
					for line, el := range lines {
						out = append(out, Entry{
							Concern:  concern,
							Category: category,
							Severity: SeverityOf(isError),
							File:     file,
							LineNo:   line,
							Line:     el.clone(),
						})
					}
				}
			}
		}
	}
	out.Sort()
	return out
}
