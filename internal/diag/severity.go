package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevWarning is for diagnostics that do not fail compilation.
	SevWarning Severity = iota
	// SevError is for diagnostics that fail compilation.
	SevError
)

// SeverityOf maps the store's is_error flag to a Severity.
func SeverityOf(isError bool) Severity {
	if isError {
		return SevError
	}
	return SevWarning
}

// IsError reports whether s fails compilation.
func (s Severity) IsError() bool {
	return s == SevError
}

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lower-case form passed to observers and used in short output.
func (s Severity) Label() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}
