package driver

import (
	"strings"

	"glslu/internal/diag"
)

const includeKeyword = "include"

// isUniformLine reports whether the first word of line is the uniform keyword.
func isUniformLine(line string) bool {
	t := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(t, "uniform") {
		return false
	}
	if len(t) == len("uniform") {
		return true
	}
	switch t[len("uniform")] {
	case ' ', '\t', '(':
		return true
	}
	return false
}

// parseInclude recognises `#include "name"` and `#include <name>`. A directive
// with a broken target gives isInclude == true and an empty name.
func parseInclude(line string) (name string, isInclude bool) {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, "#") {
		return "", false
	}
	t = strings.TrimLeft(t[1:], " \t")
	if !strings.HasPrefix(t, includeKeyword) {
		return "", false
	}
	rest := strings.TrimSpace(t[len(includeKeyword):])
	if len(rest) < 2 {
		return "", true
	}
	var closer byte
	switch rest[0] {
	case '"':
		closer = '"'
	case '<':
		closer = '>'
	default:
		return "", true
	}
	end := strings.IndexByte(rest[1:], closer)
	if end <= 0 {
		return "", true
	}
	return rest[1 : 1+end], true
}

// CachedDiag is a sink-level diagnostic kept in the disk cache.
type CachedDiag struct {
	Concern string
	IsError bool
	Message string
	Line    uint32
}

// recordingSink forwards to the unit and keeps a copy for the cache.
type recordingSink struct {
	target diag.Sink
	diags  []CachedDiag
}

func (r *recordingSink) Path() string { return r.target.Path() }

func (r *recordingSink) SetSyntaxError(file, concern string, isError bool, msg string, line uint32) {
	r.diags = append(r.diags, CachedDiag{Concern: concern, IsError: isError, Message: msg, Line: line})
	r.target.SetSyntaxError(file, concern, isError, msg, line)
}
