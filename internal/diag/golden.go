package diag

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FormatShort renders entries into a stable, single-line-per-entry form used
// by the `short` CLI format and by tests:
//
//	<severity> <file>:<line> [<concern>] <message>
//
// baseDir, when non-empty, is stripped from file paths. Entries are sorted
// first; the result is empty when there is nothing to show.
func FormatShort(entries Entries, baseDir string) string {
	if len(entries) == 0 {
		return ""
	}
	sorted := make(Entries, len(entries))
	copy(sorted, entries)
	sorted.Sort()

	var b strings.Builder
	for i, e := range sorted {
		fmt.Fprintf(&b, "%s %s:%d [%s] %s",
			e.Severity.Label(),
			relativeTo(e.File, baseDir),
			e.LineNo,
			e.Concern,
			sanitizeMessage(e.Line.String()),
		)
		if i < len(sorted)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func relativeTo(path, baseDir string) string {
	p := normalizePath(path)
	if baseDir == "" {
		return p
	}
	if rel, err := filepath.Rel(baseDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return normalizePath(rel)
	}
	return p
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
