package diag

import (
	"fmt"
	"sort"
)

// Entry is one flattened (concern, severity, category, file, line) record.
type Entry struct {
	Concern  string
	Category string
	Severity Severity
	File     string
	LineNo   uint32
	Line     ErrorLine
}

// Entries is a list of flattened diagnostics.
type Entries []Entry

// HasErrors returns true if at least one entry is an error.
func (es Entries) HasErrors() bool {
	for i := range es {
		if es[i].Severity.IsError() {
			return true
		}
	}
	return false
}

// HasWarnings returns true if at least one entry is a warning.
func (es Entries) HasWarnings() bool {
	for i := range es {
		if !es[i].Severity.IsError() {
			return true
		}
	}
	return false
}

// Sort orders entries by file, line, severity (errors first), concern and
// category for deterministic output.
func (es Entries) Sort() {
	sort.SliceStable(es, func(i, j int) bool {
		di, dj := es[i], es[j]
		if di.File != dj.File {
			return di.File < dj.File
		}
		if di.LineNo != dj.LineNo {
			return di.LineNo < dj.LineNo
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		if di.Concern != dj.Concern {
			return di.Concern < dj.Concern
		}
		return di.Category < dj.Category
	})
}

// Dedup drops entries repeating file, line, severity, concern, category and
// text. The same file can be reached through several include paths.
func (es Entries) Dedup() Entries {
	seen := make(map[string]bool, len(es))
	out := make(Entries, 0, len(es))
	for _, e := range es {
		key := fmt.Sprintf("%s:%d:%d:%s:%s:%s", e.File, e.LineNo, e.Severity, e.Concern, e.Category, e.Line.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}

// WithoutWarnings returns only the error entries.
func (es Entries) WithoutWarnings() Entries {
	out := make(Entries, 0, len(es))
	for _, e := range es {
		if e.Severity.IsError() {
			out = append(out, e)
		}
	}
	return out
}

// PromoteWarnings turns every warning into an error.
func (es Entries) PromoteWarnings() Entries {
	out := make(Entries, len(es))
	copy(out, es)
	for i := range out {
		out[i].Severity = SevError
	}
	return out
}

// Limit truncates the list to at most n entries; n <= 0 keeps everything.
func (es Entries) Limit(n int) Entries {
	if n <= 0 || n >= len(es) {
		return es
	}
	return es[:n]
}
