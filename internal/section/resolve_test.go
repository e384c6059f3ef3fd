package section

import "testing"

func TestResolveOrderIndependent(t *testing.T) {
	want := Meta{Name: "toto", Order: 1, Cond: "checkA==true"}
	for _, in := range []string{
		"toto:1:checkA==true",
		"1:checkA==true:toto",
		"checkA==true:toto:1",
	} {
		if got := Resolve(in); got != want {
			t.Errorf("Resolve(%q) = %+v, want %+v", in, got, want)
		}
	}
}

func TestResolveDefaults(t *testing.T) {
	if got := Resolve(""); got != Default() {
		t.Fatalf("Resolve(\"\") = %+v", got)
	}
	if Default().Name != "default" || Default().Order != 0 {
		t.Fatalf("unexpected defaults: %+v", Default())
	}
}

func TestResolveCases(t *testing.T) {
	tests := []struct {
		in   string
		want Meta
	}{
		{"-3", Meta{Name: DefaultName, Order: -3}},
		{"noexport", Meta{Name: DefaultName, NoExport: true}},
		{"a:b", Meta{Name: "b"}},
		{"1:2", Meta{Name: DefaultName, Order: 2}},
		{"x > 2:y!=1", Meta{Name: DefaultName, Cond: "y!=1"}},
		{"x > 2", Meta{Name: DefaultName, Cond: "x>2"}},
		{" My Section :5", Meta{Name: "My Section", Order: 5}},
		{"::", Meta{Name: DefaultName}},
		{"hidden:noexport:2", Meta{Name: "hidden", Order: 2, NoExport: true}},
		{"-", Meta{Name: DefaultName}},
		{"5:--1:tools", Meta{Name: "tools"}},
	}
	for _, tt := range tests {
		if got := Resolve(tt.in); got != tt.want {
			t.Errorf("Resolve(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestTokenClasses(t *testing.T) {
	if !IsOrder("-12") || IsOrder("1.5") || IsOrder("") {
		t.Error("IsOrder mismatch")
	}
	if !IsCondition("a<b") || !IsCondition("!flag") || IsCondition("name") {
		t.Error("IsCondition mismatch")
	}
}
