package uniform

import (
	"reflect"
	"testing"
)

func TestUploadable(t *testing.T) {
	for typ, want := range map[string]bool{
		"float":     true,
		"mat4":      true,
		"sampler2D": true,
		"text":      false,
		"whatever":  false,
	} {
		if got := IsUploadable(typ); got != want {
			t.Errorf("IsUploadable(%q) = %v, want %v", typ, got, want)
		}
	}
	d := Parse("uniform text(label) title;", 1, nil)
	if !d.IsOk() || !d.NotUploadableToGPU {
		t.Fatalf("text uniform must parse and stay on the CPU: %+v", d)
	}
}

func TestCheckSupport(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"uniform float(time) t;", nil},
		{"uniform float(0:1:0.5) t;", nil},
		{"uniform float(choice=a,b) t;", nil},
		{"uniform foo(time) t;", []string{"unsupported type foo"}},
		{"uniform vec4(colour) c;", []string{"unsupported widget colour"}},
	}
	for _, tt := range tests {
		rec := &recorder{path: "x.frag"}
		d := Parse(tt.src, 4, rec)
		if !d.IsOk() {
			t.Fatalf("%q did not parse: %v", tt.src, rec.messages())
		}
		CheckSupport(&d, rec)
		got := rec.messages()
		if len(got) == 0 {
			got = nil
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%q: warnings = %v, want %v", tt.src, got, tt.want)
		}
		for _, r := range rec.records {
			if r.isError || r.line != 4 {
				t.Errorf("%q: warning misattributed: %+v", tt.src, r)
			}
		}
	}
}
