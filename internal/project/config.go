package project

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrConfigExists is returned by WriteDefault when the file is already there.
var ErrConfigExists = errors.New(ConfigFileName + " already exists")

// Config mirrors glslu.toml.
type Config struct {
	Scan        ScanConfig        `toml:"scan"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Cache       CacheConfig       `toml:"cache"`
}

// ScanConfig is the [scan] table.
type ScanConfig struct {
	Extensions      []string `toml:"extensions"`
	IncludeDirs     []string `toml:"include_dirs"`
	MaxIncludeDepth int      `toml:"max_include_depth"`
}

// DiagnosticsConfig is the [diagnostics] table.
type DiagnosticsConfig struct {
	WarningsAsErrors bool `toml:"warnings_as_errors"`
	NoWarnings       bool `toml:"no_warnings"`
	Max              int  `toml:"max"`
}

// CacheConfig is the [cache] table. An empty Dir selects the user cache dir.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir,omitempty"`
}

// Manifest is a loaded config together with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default returns the configuration used when no glslu.toml is present.
func Default() Config {
	return Config{
		Scan: ScanConfig{
			Extensions:      []string{".glsl", ".frag", ".vert", ".comp"},
			MaxIncludeDepth: 32,
		},
		Diagnostics: DiagnosticsConfig{Max: 200},
	}
}

// Load finds glslu.toml above startDir and reads it. ErrNoConfig is returned
// when there is none.
func Load(startDir string) (*Manifest, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoConfig
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// LoadConfig reads path on top of Default. Keys missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("scan", "max_include_depth") && cfg.Scan.MaxIncludeDepth <= 0 {
		return Config{}, fmt.Errorf("%s: [scan].max_include_depth must be positive", path)
	}
	if meta.IsDefined("scan", "extensions") {
		for _, ext := range cfg.Scan.Extensions {
			if !strings.HasPrefix(ext, ".") {
				return Config{}, fmt.Errorf("%s: [scan].extensions entry %q must start with '.'", path, ext)
			}
		}
	}
	if cfg.Diagnostics.Max < 0 {
		return Config{}, fmt.Errorf("%s: [diagnostics].max must not be negative", path)
	}
	return cfg, nil
}

// IncludeDirs returns the configured include directories resolved against Root.
func (m *Manifest) IncludeDirs() []string {
	out := make([]string, 0, len(m.Config.Scan.IncludeDirs))
	for _, dir := range m.Config.Scan.IncludeDirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(m.Root, filepath.FromSlash(dir))
		}
		out = append(out, dir)
	}
	return out
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	if _, err := io.WriteString(w, "# glslu configuration\n"); err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(cfg)
}

// WriteDefault creates glslu.toml with default values in dir.
func WriteDefault(dir string) (string, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(f, Default()); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
