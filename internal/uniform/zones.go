package uniform

import "strings"

// Small scanners for the zones of a declaration. Every function searches
// forward from a byte offset and returns -1 when nothing matches.

func isLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}

func isIdentStart(b byte) bool {
	return b == '_' || isLower(b) || (b >= 'A' && b <= 'Z')
}

func isIdentByte(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func indexAnyFrom(s string, from int, set string) int {
	for i := from; i < len(s); i++ {
		for j := 0; j < len(set); j++ {
			if s[i] == set[j] {
				return i
			}
		}
	}
	return -1
}

func indexFuncFrom(s string, from int, pred func(byte) bool) int {
	for i := from; i < len(s); i++ {
		if pred(s[i]) {
			return i
		}
	}
	return -1
}

// closing finds the terminator of a bracketed zone opened just before from.
// ok is false when another opener comes first or nothing closes the zone;
// end is then the offset where scanning can resume, from itself when
// nothing closes it.
func closing(s string, from int, open, close byte) (end int, ok bool) {
	i := indexAnyFrom(s, from, string([]byte{open, close}))
	switch {
	case i < 0:
		return from, false
	case s[i] == open:
		return i, false
	default:
		return i, true
	}
}

// stripBytes removes every byte of set from s.
func stripBytes(s, set string) string {
	if !strings.ContainsAny(s, set) {
		return s
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(set, s[i]) < 0 {
			out = append(out, s[i])
		}
	}
	return string(out)
}
