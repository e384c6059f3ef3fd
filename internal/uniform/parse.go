package uniform

import (
	"strings"

	"glslu/internal/diag"
	"glslu/internal/params"
	"glslu/internal/section"
)

const keyword = "uniform"

// Messages written to the sink, all under diag.ConcernUniform.
const (
	MsgMissingParen     = "bad syntax, missing )"
	MsgMissingBracket   = "bad syntax, missing ]"
	MsgBadName          = "bad uniform name"
	MsgNameChars        = "uniform name can only contain a-z, A-Z, 0-9 and _"
	MsgMissingSemicolon = "uniform line must finish by ;"
	MsgBadSyntax        = "bad uniform syntax"
)

const (
	// stripped from type, params, name and array
	fieldSpaces = " \t\r"
	// stripped from the comment, which keeps its spaces
	commentSpaces = "\t\r"
)

type parser struct {
	src  string
	line uint32
	sink diag.Sink
	pos  int
	decl Declaration

	// the name ran to the end of the input; already reported
	nameUnterminated bool
}

// Parse reads one declaration. line is the source line the declaration starts
// on and is used for every diagnostic written to sink.
//
// A string without the "uniform" keyword yields the zero Declaration and no
// diagnostic. Any grammar problem is reported to sink and also yields the zero
// Declaration, so callers never see a partially filled value.
func Parse(src string, line uint32, sink diag.Sink) Declaration {
	if sink == nil {
		sink = diag.NopSink{}
	}
	start := strings.Index(src, keyword)
	if start < 0 {
		return Declaration{}
	}

	p := &parser{src: src, line: line, sink: sink, pos: start + len(keyword)}
	zones := []func(){p.sectionZone, p.typeZone, p.nameZone, p.arrayZone, p.commentZone}
	for _, zone := range zones {
		zone()
		// one grammar error per declaration
		if p.decl.BadSyntax {
			break
		}
	}
	p.normalize()

	if p.decl.IsOk() {
		p.finish()
	}
	if !p.decl.IsOk() {
		p.fail(MsgBadSyntax)
		return Declaration{}
	}
	return p.decl
}

// fail reports msg and marks the declaration as broken.
func (p *parser) fail(msg string) {
	p.report(msg)
	p.decl.BadSyntax = true
}

func (p *parser) report(msg string) {
	p.sink.SetSyntaxError(p.sink.Path(), diag.ConcernUniform, true, msg, p.line)
}

// sectionZone reads the optional "(section)" glued to the keyword.
func (p *parser) sectionZone() {
	i := indexAnyFrom(p.src, p.pos, " \t(")
	if i < 0 || p.src[i] != '(' {
		return
	}
	end, ok := closing(p.src, i+1, '(', ')')
	p.decl.SectionParams = p.src[i+1 : end]
	if !ok {
		p.fail(MsgMissingParen)
		p.pos = end
		return
	}
	p.pos = end + 1
}

// typeZone reads the type and its optional "(params)".
func (p *parser) typeZone() {
	t0 := indexFuncFrom(p.src, p.pos, isLower)
	if t0 < 0 {
		return
	}
	k := indexAnyFrom(p.src, t0, " \t(")
	switch {
	case k < 0:
		p.decl.Type = p.src[t0:]
		p.pos = len(p.src)
	case p.src[k] == '(':
		p.decl.Type = p.src[t0:k]
		end, ok := closing(p.src, k+1, '(', ')')
		p.decl.Params = p.src[k+1 : end]
		if !ok {
			p.fail(MsgMissingParen)
			p.pos = end
			return
		}
		p.pos = end + 1
	default:
		p.decl.Type = p.src[t0:k]
		p.pos = k
	}
}

func (p *parser) nameZone() {
	n0 := indexFuncFrom(p.src, p.pos, isIdentStart)
	if n0 < 0 {
		p.fail(MsgBadName)
		p.pos = len(p.src)
		return
	}
	n1 := indexFuncFrom(p.src, n0, func(b byte) bool { return !isIdentByte(b) })
	if n1 < 0 {
		// reported without failing the declaration
		p.report(MsgNameChars)
		p.decl.Name = p.src[n0:]
		p.nameUnterminated = true
		p.pos = len(p.src)
		return
	}
	p.decl.Name = p.src[n0:n1]
	p.pos = n1
}

func (p *parser) arrayZone() {
	a := indexAnyFrom(p.src, p.pos, "[;\n")
	if a < 0 || p.src[a] != '[' {
		return
	}
	end, ok := closing(p.src, a+1, '[', ']')
	p.decl.Array = p.src[a+1 : end]
	if !ok {
		p.fail(MsgMissingBracket)
		p.pos = end
		return
	}
	p.pos = end + 1
}

func (p *parser) commentZone() {
	t := indexAnyFrom(p.src, p.pos, ";\n")
	if t < 0 {
		if !p.nameUnterminated {
			p.fail(MsgMissingSemicolon)
		}
		return
	}
	if p.src[t] == '\n' {
		p.fail(MsgMissingSemicolon)
		return
	}

	rest := p.src[t+1:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	c := strings.Index(rest, "//")
	if c < 0 {
		return
	}
	text := strings.TrimPrefix(rest[c+2:], " ")
	p.decl.CommentOriginal = text
	p.decl.Comment = strings.ReplaceAll(text, `\n`, "\n")
}

func (p *parser) normalize() {
	d := &p.decl
	d.OriginalParams = d.Params
	d.Type = stripBytes(d.Type, fieldSpaces)
	d.Params = stripBytes(d.Params, fieldSpaces)
	d.Name = stripBytes(d.Name, fieldSpaces)
	d.Array = stripBytes(d.Array, fieldSpaces)
	d.Comment = stripBytes(d.Comment, commentSpaces)

	switch d.Params {
	case DirectionIn, DirectionOut:
		d.Direction = d.Params
	}
}

// finish fills the fields derived from an accepted low-level parse.
func (p *parser) finish() {
	d := &p.decl
	d.SourceLine = p.line
	d.NotUploadableToGPU = !IsUploadable(d.Type)

	// any section token holding '=' resolves as a condition ("a==b"), so
	// repeated '=' is not an error there
	d.SectionList, _ = params.Split(d.SectionParams, params.Delim)

	var errs []error
	d.ParamList, errs = params.Split(d.Params, params.Delim)
	for _, err := range errs {
		p.fail(err.Error())
	}

	// same tokens as Params modulo spaces; problems were reported above
	d.OriginalList, _ = params.Split(d.OriginalParams, params.Delim)

	meta := section.Resolve(d.SectionParams)
	d.SectionName = meta.Name
	d.SectionOrder = meta.Order
	d.SectionCond = meta.Cond
	d.NoExport = meta.NoExport
}
