package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestInfo(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})

	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"1.2.3", "", "", "glslu 1.2.3"},
		{"1.2.3", "1234567890abcdef", "", "glslu 1.2.3 (1234567890ab)"},
		{"0.1.0-dev", "abc123", "2024-01-15", "glslu 0.1.0-dev (abc123, 2024-01-15)"},
	}
	for _, tt := range tests {
		Version, GitCommit, BuildDate = tt.version, tt.commit, tt.date
		if got := Info(false); got != tt.want {
			t.Errorf("Info() = %q, want %q", got, tt.want)
		}
	}
}

func TestColoredKeepsSuffix(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	t.Cleanup(func() { Version, color.NoColor = origVersion, origNoColor })

	color.NoColor = true
	Version = "1.2.3-rc.1+build.5"
	if got := Colored(); got != Version {
		t.Errorf("Colored() without colour = %q", got)
	}
	Version = "not-a-version"
	if got := Colored(); got != Version {
		t.Errorf("Colored() = %q for malformed version", got)
	}

	color.NoColor = false
	Version = "1.2.3-dev"
	if got := Colored(); !strings.HasSuffix(got, "-dev") || !strings.Contains(got, "\x1b[") {
		t.Errorf("Colored() = %q", got)
	}
}
