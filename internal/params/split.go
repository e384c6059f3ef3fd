// Package params splits the `key=value,value:key` blobs that appear inside the
// section and type parentheses of an annotated uniform declaration.
package params

import "strings"

// Delim separates tokens inside a parameter blob.
const Delim = ':'

// List is the result of splitting one blob: the raw tokens in source order and
// a key -> values dictionary built from them.
type List struct {
	Tokens []string
	Dict   map[string][]string
}

// Empty reports whether the blob produced no tokens.
func (l List) Empty() bool {
	return len(l.Tokens) == 0
}

// Has reports whether key appeared as a token key.
func (l List) Has(key string) bool {
	_, ok := l.Dict[key]
	return ok
}

// Values returns the comma-separated values recorded for key.
func (l List) Values(key string) []string {
	return l.Dict[key]
}

// First returns the first value recorded for key, if any.
func (l List) First(key string) (string, bool) {
	vals := l.Dict[key]
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// TooManyEqualsError is reported for a token holding more than one '='.
type TooManyEqualsError struct {
	Token string
}

func (e *TooManyEqualsError) Error() string {
	return "too much = in " + e.Token
}

// Split cuts text on delim and then every token on '='.
//
// A token with exactly one '=' maps its left side to the right side split on
// ','. A token with no '=' maps to an empty value list. A token with more than
// one '=' is skipped entirely and yields a *TooManyEqualsError. Empty text
// gives an empty List.
func Split(text string, delim byte) (List, []error) {
	out := List{Dict: make(map[string][]string)}
	if text == "" {
		return out, nil
	}

	var errs []error
	for _, tok := range strings.Split(text, string(delim)) {
		switch strings.Count(tok, "=") {
		case 0:
			out.Dict[tok] = []string{}
		case 1:
			key, value, _ := strings.Cut(tok, "=")
			out.Dict[key] = strings.Split(value, ",")
		default:
			errs = append(errs, &TooManyEqualsError{Token: tok})
			continue
		}
		out.Tokens = append(out.Tokens, tok)
	}
	return out, errs
}
