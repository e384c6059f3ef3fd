package trace

import "time"

// Kind is what an Event marks.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	// KindError is an instant event emitted at every level but off.
	KindError
)

var kindNames = [...]string{"", "begin", "end", "point", "error"}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event; lower values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one CLI command
	ScopePass                    // scan of one root, directory sweep
	ScopeFile                    // one unit of an include tree
	ScopeDiag                    // one committed diagnostic
)

var scopeNames = [...]string{"", "driver", "pass", "file", "diag"}

func (s Scope) String() string {
	if s > 0 && int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record. Span events share SpanID between begin and end.
type Event struct {
	Time     time.Time
	Seq      uint64 // global, monotonic
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	Name     string // "scan", "file", "diagnostic"
	Detail   string
	Extra    map[string]string
}
