package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	if err := os.WriteFile(path, []byte("Draft\nbody"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := readSource(path, nil)
	if err != nil {
		t.Fatalf("readSource failed: %v", err)
	}
	if got != "Draft\nbody" {
		t.Errorf("readSource = %q", got)
	}
}

func TestReadSourceStdin(t *testing.T) {
	got, err := readSource("-", strings.NewReader("From stdin\n[tag]"))
	if err != nil {
		t.Fatalf("readSource failed: %v", err)
	}
	if got != "From stdin\n[tag]" {
		t.Errorf("readSource = %q", got)
	}
}

func TestReadSourceMissing(t *testing.T) {
	if _, err := readSource(filepath.Join(t.TempDir(), "missing.txt"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}
