package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps short or relative paths and shortens long absolute ones.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	// ShowSource prints the offending source line under each diagnostic.
	ShowSource bool
	// ShowCategory adds the category when it differs from the concern.
	ShowCategory bool
	Summary      bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode         PathMode
	Max              int // обрезка вывода
	IncludeFragments bool
}
