// Package uniform parses the annotated `uniform(...)` declarations found in
// shader sources.
//
// The accepted statement is
//
//	uniform(section) type(params) name[array]; // comment
//
// where the section, the params, the array and the comment are optional.
// Section and params are ':'-separated token lists (see internal/params and
// internal/section). Problems are written to a diag.Sink as soon as they are
// found; a declaration that fails is returned as the zero Declaration.
package uniform

import (
	"glslu/internal/params"
)

// Buffer directions accepted as params of compute-shader buffers.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Declaration is the parsed form of one uniform line.
type Declaration struct {
	// SectionParams is the raw text between "uniform(" and ")".
	SectionParams string
	Type          string
	// Params has spaces, tabs and CRs removed; OriginalParams keeps them for
	// regenerating the declaration.
	Params         string
	OriginalParams string
	Name           string
	Array          string
	// Comment has literal `\n` sequences expanded, CommentOriginal does not.
	Comment         string
	CommentOriginal string
	Direction       string

	SectionList  params.List
	ParamList    params.List
	OriginalList params.List

	SectionName  string
	SectionOrder int
	SectionCond  string
	NoExport     bool

	SourceLine         uint32
	BadSyntax          bool
	NotUploadableToGPU bool
}

// IsOk reports whether the declaration has a type and a name and no syntax
// problem was detected.
func (d *Declaration) IsOk() bool {
	return d.Type != "" && d.Name != "" && !d.BadSyntax
}

// IsArray reports whether an array size was given.
func (d *Declaration) IsArray() bool {
	return d.Array != ""
}

// IsBuffer reports whether the params declare a compute buffer direction.
func (d *Declaration) IsBuffer() bool {
	return d.Direction != ""
}
