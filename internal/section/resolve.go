// Package section resolves the section metadata carried by `uniform(...)`:
// the widget group name, its display order, an optional visibility condition
// and the export-suppression flag.
package section

import (
	"strconv"
	"strings"

	"glslu/internal/params"
)

const (
	// DefaultName is used when no token names a section.
	DefaultName = "default"
	// NoExportToken suppresses export of the uniform.
	NoExportToken = "noexport"
)

// Meta is the resolved section metadata of one declaration.
type Meta struct {
	Name     string
	Order    int
	Cond     string
	NoExport bool
}

// Default returns the metadata of a declaration without section tokens.
func Default() Meta {
	return Meta{Name: DefaultName}
}

// Resolve classifies every non-empty ':'-separated token of text.
//
// Priority: an order (digits and '-'), then a condition (contains one of
// "!<>="), then the literal "noexport", else a section name. Each class keeps
// the last token that matched it.
func Resolve(text string) Meta {
	meta := Default()
	for _, raw := range strings.Split(text, string(params.Delim)) {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		switch {
		case IsOrder(tok):
			// "-" or "--1" pass the byte class but are not numbers: order 0
			meta.Order, _ = strconv.Atoi(tok)
		case IsCondition(tok):
			meta.Cond = stripSpaces(tok)
		case tok == NoExportToken:
			meta.NoExport = true
		default:
			meta.Name = tok
		}
	}
	return meta
}
