package uniform

import (
	"strings"

	"glslu/internal/diag"
)

// glslTypes lists the GLSL types that can back a uniform on the GPU.
var glslTypes = map[string]struct{}{
	// Basic types
	"bool": {}, "int": {}, "uint": {}, "float": {}, "double": {},

	// Vector types
	"vec2": {}, "vec3": {}, "vec4": {},
	"ivec2": {}, "ivec3": {}, "ivec4": {},
	"uvec2": {}, "uvec3": {}, "uvec4": {},
	"bvec2": {}, "bvec3": {}, "bvec4": {},
	"dvec2": {}, "dvec3": {}, "dvec4": {},

	// Matrix types
	"mat2": {}, "mat3": {}, "mat4": {},
	"mat2x2": {}, "mat2x3": {}, "mat2x4": {},
	"mat3x2": {}, "mat3x3": {}, "mat3x4": {},
	"mat4x2": {}, "mat4x3": {}, "mat4x4": {},

	// Samplers
	"sampler1D": {}, "sampler2D": {}, "sampler3D": {}, "samplerCube": {},
	"sampler2DArray": {}, "sampler2DShadow": {}, "samplerBuffer": {},
	"isampler2D": {}, "usampler2D": {},

	// Images
	"image1D": {}, "image2D": {}, "image3D": {}, "imageCube": {},
	"image2DArray": {}, "imageBuffer": {},
	"iimage2D": {}, "uimage2D": {},
}

// uiTypes exist only as widgets in the uniform panel; nothing is uploaded.
var uiTypes = map[string]struct{}{
	"text":      {},
	"label":     {},
	"separator": {},
}

// widgets are the bare first tokens of params that select an input widget or
// a uniform producer.
var widgets = map[string]struct{}{
	"time": {}, "deltatime": {}, "frame": {}, "date": {}, "framerate": {},
	"mouse": {}, "buffer": {}, "picture": {}, "cubemap": {}, "volume": {},
	"color": {}, "checkbox": {}, "combobox": {}, "radio": {}, "button": {},
	"camera": {}, "sound": {}, "midi": {}, "gamepad": {}, "vr": {},
	DirectionIn: {}, DirectionOut: {},
}

// IsUploadable reports whether a uniform of type typ is sent to the GPU.
func IsUploadable(typ string) bool {
	_, ok := glslTypes[typ]
	return ok
}

// IsKnownType reports whether typ is a GLSL type or a UI-only type.
func IsKnownType(typ string) bool {
	if _, ok := glslTypes[typ]; ok {
		return true
	}
	_, ok := uiTypes[typ]
	return ok
}

// IsKnownWidget reports whether name selects a supported widget.
func IsKnownWidget(name string) bool {
	_, ok := widgets[name]
	return ok
}

// Widget returns the widget named by the first param token, if that token is
// a bare word (no '=', starts with a letter).
func Widget(d *Declaration) (string, bool) {
	if len(d.ParamList.Tokens) == 0 {
		return "", false
	}
	tok := d.ParamList.Tokens[0]
	if tok == "" || strings.Contains(tok, "=") || !isIdentStart(tok[0]) {
		return "", false
	}
	return tok, true
}

// CheckSupport reports unsupported types and widgets of an accepted
// declaration as warnings under diag.ConcernUniformWarning. It never marks
// the declaration as broken.
func CheckSupport(d *Declaration, sink diag.Sink) {
	if sink == nil || !d.IsOk() {
		return
	}
	if !IsKnownType(d.Type) {
		sink.SetSyntaxError(sink.Path(), diag.ConcernUniformWarning, false, "unsupported type "+d.Type, d.SourceLine)
	}
	if w, ok := Widget(d); ok && !IsKnownWidget(w) {
		sink.SetSyntaxError(sink.Path(), diag.ConcernUniformWarning, false, "unsupported widget "+w, d.SourceLine)
	}
}
