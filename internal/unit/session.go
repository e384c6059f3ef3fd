// Package unit keeps the compile units of one scan: the root shader and every
// file it reaches through #include. Units are addressed by ID, a handle into
// the Session arena, so parsed data never holds a pointer back to its owner.
package unit

import (
	"glslu/internal/diag"
)

var _ diag.Sink = (*Unit)(nil)

// ID identifies a unit inside its Session. The zero ID is never assigned.
type ID uint32

// NoID is returned by lookups that find nothing.
const NoID ID = 0

// Unit is one compiled file with its own diagnostics store.
type Unit struct {
	ID       ID
	File     string
	Includes []string // resolved include paths, in source order
	Errors   *diag.SyntaxErrors

	session *Session
}

// Path implements diag.Sink.
func (u *Unit) Path() string { return u.File }

// SetSyntaxError implements diag.Sink. The message is stored with the concern
// doubling as its category.
func (u *Unit) SetSyntaxError(file, concern string, isError bool, msg string, line uint32) {
	errs := diag.NewLineFileErrors()
	errs.Set(line, file, msg)
	u.SetErrors(concern, concern, isError, errs)
}

// SetErrors commits a prepared batch under an explicit category.
func (u *Unit) SetErrors(concern, category string, isError bool, errs *diag.LineFileErrors) {
	u.Errors.SetSyntaxError(concern, category, isError, errs, u.session.observer)
}

// AddInclude records path as included by u. Repeated paths are kept once.
func (u *Unit) AddInclude(path string) {
	for _, p := range u.Includes {
		if p == path {
			return
		}
	}
	u.Includes = append(u.Includes, path)
}

// Session is the arena owning every unit of a scan. It is not safe for
// concurrent use; parallel scans use one Session per root.
type Session struct {
	units    []*Unit
	index    map[string]ID
	observer diag.Observer
}

// NewSession creates an empty arena. obs may be nil.
func NewSession(obs diag.Observer) *Session {
	return &Session{
		units:    []*Unit{nil}, // slot 0 is NoID
		index:    make(map[string]ID),
		observer: obs,
	}
}

// Add returns the unit for path, creating it on first use.
func (s *Session) Add(path string) *Unit {
	if id, ok := s.index[path]; ok {
		return s.units[id]
	}
	u := &Unit{
		ID:      ID(len(s.units)), //nolint:gosec // arena size is bounded by the number of files
		File:    path,
		Errors:  diag.NewSyntaxErrors(),
		session: s,
	}
	s.units = append(s.units, u)
	s.index[path] = u.ID
	return u
}

// Get returns the unit for id or nil.
func (s *Session) Get(id ID) *Unit {
	if id == NoID || int(id) >= len(s.units) {
		return nil
	}
	return s.units[id]
}

// Lookup resolves an include key to its unit.
func (s *Session) Lookup(path string) (*Unit, bool) {
	id, ok := s.index[path]
	if !ok {
		return nil, false
	}
	return s.units[id], true
}

// Len returns the number of units.
func (s *Session) Len() int {
	return len(s.units) - 1
}

// Units returns the units in creation order.
func (s *Session) Units() []*Unit {
	out := make([]*Unit, 0, s.Len())
	return append(out, s.units[1:]...)
}
