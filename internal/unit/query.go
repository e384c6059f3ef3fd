package unit

import (
	"strings"

	"glslu/internal/diag"
)

// HasAny reports whether the unit or anything it includes, directly or not,
// holds a diagnostic of the given severity. Each unit is visited once.
func (s *Session) HasAny(id ID, isError bool) bool {
	found := false
	s.walk(id, make(map[ID]bool), func(u *Unit) bool {
		found = u.Errors.Has(isError)
		return !found
	})
	return found
}

// ToString concatenates the text of the given severity recorded in the units
// reachable through includes. The unit's own diagnostics are not part of the
// result; callers that want them use u.Errors.Text.
func (s *Session) ToString(id ID, isError bool) string {
	u := s.Get(id)
	if u == nil {
		return ""
	}
	var b strings.Builder
	s.includesText(u, isError, map[ID]bool{id: true}, &b)
	return b.String()
}

func (s *Session) includesText(u *Unit, isError bool, visited map[ID]bool, b *strings.Builder) {
	for _, path := range u.Includes {
		child, ok := s.Lookup(path)
		if !ok || visited[child.ID] {
			continue
		}
		visited[child.ID] = true
		b.WriteString(child.Errors.Text(isError))
		s.includesText(child, isError, visited, b)
	}
}

// Collect flattens the diagnostics of the unit and of its include tree.
// A file reached through several paths contributes once.
func (s *Session) Collect(id ID) diag.Entries {
	var out diag.Entries
	s.walk(id, make(map[ID]bool), func(u *Unit) bool {
		out = append(out, u.Errors.Entries()...)
		return true
	})
	out = out.Dedup()
	out.Sort()
	return out
}

// Walk visits the unit and its include tree depth-first, owner first. fn
// returning false stops the walk.
func (s *Session) Walk(id ID, fn func(*Unit) bool) {
	s.walk(id, make(map[ID]bool), fn)
}

func (s *Session) walk(id ID, visited map[ID]bool, fn func(*Unit) bool) bool {
	u := s.Get(id)
	if u == nil || visited[id] {
		return true
	}
	visited[id] = true
	if !fn(u) {
		return false
	}
	for _, path := range u.Includes {
		child, ok := s.Lookup(path)
		if !ok {
			continue
		}
		if !s.walk(child.ID, visited, fn) {
			return false
		}
	}
	return true
}

// Clear resets the diagnostics of every unit before a new pass.
func (s *Session) Clear() {
	for _, u := range s.units[1:] {
		u.Errors.Clear()
	}
}

// ClearConcern drops one concern from every unit.
func (s *Session) ClearConcern(concern string) {
	for _, u := range s.units[1:] {
		u.Errors.ClearConcern(concern)
	}
}
