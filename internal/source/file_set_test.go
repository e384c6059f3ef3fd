package source

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.frag", []byte("uniform float a;\n"), 0)
	id2 := fs.Add("main.frag", []byte("uniform float b;\n"), 0)
	if id1 == id2 {
		t.Fatal("Expected a new FileID for the second Add")
	}

	latestID, ok := fs.GetLatest("main.frag")
	if !ok || latestID != id2 {
		t.Errorf("Expected latest ID %d, got %d (ok=%v)", id2, latestID, ok)
	}

	// старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "uniform float a;\n" {
		t.Errorf("Expected first content to survive, got %q", got)
	}
	if fs.Get(FileID(99)) != nil {
		t.Error("Expected nil for unknown FileID")
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.glsl", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestCRLFNormalization(t *testing.T) {
	normalized, changed := normalizeCRLF([]byte("a\r\nb\rc\r\n"))
	if !changed {
		t.Error("Expected CRLF normalization to be detected")
	}
	// одиночный \r не трогаем
	if string(normalized) != "a\nb\rc\n" {
		t.Errorf("Unexpected normalized content %q", normalized)
	}
}

func TestBOMRemoval(t *testing.T) {
	withoutBOM, hadBOM := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x', '\n'})
	if !hadBOM || string(withoutBOM) != "x\n" {
		t.Errorf("Expected BOM to be stripped, got %q (had=%v)", withoutBOM, hadBOM)
	}
	if _, hadBOM := removeBOM([]byte("x")); hadBOM {
		t.Error("Short content has no BOM")
	}
}

func TestLinesKeepNewline(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("main.frag", []byte("uniform float a;\n\nuniform vec2 b")))

	var got []string
	for n, line := range file.Lines() {
		got = append(got, line)
		if file.GetLine(n)+"\n" != line && n != 3 {
			t.Errorf("GetLine(%d) = %q does not match %q", n, file.GetLine(n), line)
		}
	}
	want := []string{"uniform float a;\n", "\n", "uniform vec2 b"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d lines, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i+1, want[i], got[i])
		}
	}
	if file.LineCount() != 3 {
		t.Errorf("Expected 3 lines, got %d", file.LineCount())
	}
	if file.GetLine(0) != "" || file.GetLine(4) != "" {
		t.Error("Expected empty string for out-of-range lines")
	}
}

func TestEdgeCases(t *testing.T) {
	fs := NewFileSet()

	empty := fs.Get(fs.AddVirtual("empty.glsl", []byte{}))
	if empty.LineCount() != 0 || len(empty.LineIdx) != 0 {
		t.Errorf("Expected no lines for empty file, got %d", empty.LineCount())
	}

	only := fs.Get(fs.AddVirtual("only_newline.glsl", []byte("\n")))
	if only.LineCount() != 1 || only.GetLine(1) != "" {
		t.Errorf("Expected one empty line, got %d %q", only.LineCount(), only.GetLine(1))
	}
}

func TestLoadNormalizesAndHashes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.frag")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb\r\n"), 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "a\nb\n" {
		t.Errorf("Expected normalized content, got %q", file.Content)
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("Expected BOM and CRLF flags, got %b", file.Flags)
	}
	sum := sha256.Sum256([]byte("a\nb\n"))
	if file.HashHex() != hex.EncodeToString(sum[:]) {
		t.Errorf("Hash must cover the normalized content")
	}
	if _, ok := fs.GetByPath(path); !ok {
		t.Error("Expected GetByPath to find the loaded file")
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.frag")); err == nil {
		t.Fatal("Expected an error for a missing file")
	}
	if fs.Len() != 0 {
		t.Error("A failed Load must not add a file")
	}
}
