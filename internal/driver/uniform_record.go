package driver

import (
	"glslu/internal/uniform"
)

// Uniform is the long-lived record of one accepted declaration, the part of
// uniform.Declaration the rest of the tool keeps after the scan.
type Uniform struct {
	File      string
	Line      uint32
	Name      string
	Type      string
	Array     string
	Params    map[string][]string
	Direction string
	Widget    string
	Comment   string

	Section  string
	Order    int
	Cond     string
	NoExport bool

	Uploadable bool
}

func newUniform(file string, d *uniform.Declaration) Uniform {
	widget, _ := uniform.Widget(d)
	return Uniform{
		File:       file,
		Line:       d.SourceLine,
		Name:       d.Name,
		Type:       d.Type,
		Array:      d.Array,
		Params:     d.ParamList.Dict,
		Direction:  d.Direction,
		Widget:     widget,
		Comment:    d.Comment,
		Section:    d.SectionName,
		Order:      d.SectionOrder,
		Cond:       d.SectionCond,
		NoExport:   d.NoExport,
		Uploadable: !d.NotUploadableToGPU,
	}
}

// Include is one #include directive of a file.
type Include struct {
	Name     string
	Line     uint32
	Resolved string // empty when resolution failed
}
