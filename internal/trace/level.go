package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity. Each level adds one finer Scope.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // only Error points
	LevelPhase        // driver and pass spans
	LevelDetail       // plus per-file spans
	LevelDebug        // plus every committed diagnostic
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// finest scope emitted at each level; 0 emits none
var levelScope = [...]Scope{0, 0, ScopePass, ScopeFile, ScopeDiag}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level, ignoring case.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass at this level. Error
// points bypass this check.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelScope) {
		return false
	}
	return scope != 0 && scope <= levelScope[l]
}
