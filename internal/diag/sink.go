package diag

// NoLine marks a diagnostic that is not tied to a source line.
const NoLine uint32 = 0

// Concerns used across the module. Concern is the top level of the store.
const (
	ConcernUniform        = "Uniform error"
	ConcernUniformWarning = "Uniform warning"
	ConcernInclude        = "Include error"
	ConcernCompilation    = "Compilation error:"
	ConcernIO             = "I/O error"
)

// Sink receives diagnostics for one compile unit.
type Sink interface {
	// Path is the file the unit was loaded from.
	Path() string
	// SetSyntaxError records msg at (file, line) under concern.
	SetSyntaxError(file, concern string, isError bool, msg string, line uint32)
}

// Observer is notified once per (file, line) pair committed to a store.
// severity is "error" or "warning".
type Observer interface {
	OnDiagnostic(concern, severity, category string, line ErrorLine)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(concern, severity, category string, line ErrorLine)

func (f ObserverFunc) OnDiagnostic(concern, severity, category string, line ErrorLine) {
	f(concern, severity, category, line)
}

// NopSink drops everything; it is handy for callers that only want the parse
// result.
type NopSink struct{}

func (NopSink) Path() string { return "" }

func (NopSink) SetSyntaxError(string, string, bool, string, uint32) {}
