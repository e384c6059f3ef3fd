package params

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplitMultiValue(t *testing.T) {
	got, errs := Split("choice=a,b,c:flip=true", Delim)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	wantTokens := []string{"choice=a,b,c", "flip=true"}
	if !reflect.DeepEqual(got.Tokens, wantTokens) {
		t.Fatalf("tokens = %q, want %q", got.Tokens, wantTokens)
	}
	wantDict := map[string][]string{
		"choice": {"a", "b", "c"},
		"flip":   {"true"},
	}
	if !reflect.DeepEqual(got.Dict, wantDict) {
		t.Fatalf("dict = %v, want %v", got.Dict, wantDict)
	}
}

func TestSplitTooManyEquals(t *testing.T) {
	got, errs := Split("a=b=c", Delim)
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	var tme *TooManyEqualsError
	if !errors.As(errs[0], &tme) {
		t.Fatalf("expected *TooManyEqualsError, got %T", errs[0])
	}
	if errs[0].Error() != "too much = in a=b=c" {
		t.Errorf("message = %q", errs[0].Error())
	}
	if len(got.Dict) != 0 || len(got.Tokens) != 0 {
		t.Errorf("bad token must not produce an entry, got %+v", got)
	}
}

func TestSplitCases(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		tokens []string
		dict   map[string][]string
		errs   int
	}{
		{"empty", "", nil, map[string][]string{}, 0},
		{"bare key", "time", []string{"time"}, map[string][]string{"time": {}}, 0},
		{"numbers", "0:1:0.5", []string{"0", "1", "0.5"}, map[string][]string{"0": {}, "1": {}, "0.5": {}}, 0},
		{"empty value", "def=", []string{"def="}, map[string][]string{"def": {""}}, 0},
		{"mixed bad", "x=1:y==2:z", []string{"x=1", "z"}, map[string][]string{"x": {"1"}, "z": {}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs := Split(tt.text, Delim)
			if len(errs) != tt.errs {
				t.Fatalf("errors = %v, want %d", errs, tt.errs)
			}
			if !reflect.DeepEqual(got.Tokens, tt.tokens) {
				t.Errorf("tokens = %q, want %q", got.Tokens, tt.tokens)
			}
			if !reflect.DeepEqual(got.Dict, tt.dict) {
				t.Errorf("dict = %v, want %v", got.Dict, tt.dict)
			}
		})
	}
}

func TestListAccessors(t *testing.T) {
	l, _ := Split("combo=a,b:flag", Delim)
	if !l.Has("flag") || l.Has("missing") {
		t.Fatalf("Has mismatch: %+v", l)
	}
	if v, ok := l.First("combo"); !ok || v != "a" {
		t.Errorf("First(combo) = %q, %v", v, ok)
	}
	if _, ok := l.First("flag"); ok {
		t.Error("flag has no values")
	}
	if l.Empty() {
		t.Error("list should not be empty")
	}
}
