package driver

import (
	"errors"

	"glslu/internal/diag"
)

// DefaultMaxIncludeDepth bounds include chains when the caller sets no limit.
const DefaultMaxIncludeDepth = 32

// DefaultExtensions are the shader files picked up by ScanDir.
var DefaultExtensions = []string{".glsl", ".frag", ".vert", ".comp"}

// ErrIncludeNotFound is wrapped by include resolution failures.
var ErrIncludeNotFound = errors.New("include file not found")

// ScanOptions controls ScanFile and ScanDir.
type ScanOptions struct {
	// IncludeDirs are searched, in order, after the including file's directory.
	IncludeDirs     []string
	MaxIncludeDepth int
	// Extensions filters ScanDir; empty means DefaultExtensions.
	Extensions []string

	// Cache, when non-nil, replays per-file results keyed by content hash.
	Cache *DiskCache
	// Observer is told about every committed diagnostic. ScanDir shares it
	// between goroutines.
	Observer diag.Observer
	Progress ProgressSink

	EnableTimings bool
}

func (o ScanOptions) maxDepth() int {
	if o.MaxIncludeDepth <= 0 {
		return DefaultMaxIncludeDepth
	}
	return o.MaxIncludeDepth
}

func (o ScanOptions) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions
	}
	return o.Extensions
}
