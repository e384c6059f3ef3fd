package diagfmt

import (
	"glslu/internal/source"
)

func formatPath(path string, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return source.FormatPath(path, "absolute", "")
	case PathModeRelative:
		base := ""
		if fs != nil {
			base = fs.BaseDir()
		}
		return source.FormatPath(path, "relative", base)
	case PathModeBasename:
		return source.FormatPath(path, "basename", "")
	default:
		return source.FormatPath(path, "auto", "")
	}
}

// sourceLine returns the text of line in path when fs holds the file.
func sourceLine(fs *source.FileSet, path string, line uint32) (string, bool) {
	if fs == nil || line == 0 {
		return "", false
	}
	f, ok := fs.GetByPath(path)
	if !ok || line > f.LineCount() {
		return "", false
	}
	return f.GetLine(line), true
}
