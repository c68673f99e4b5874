package ocr

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// pngHeader is the 8-byte PNG signature followed by enough bytes for content
// sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

func TestValidateAcceptsImages(t *testing.T) {
	path := writeTempFile(t, "scan.png", pngHeader)

	if err := Validate(path); err != nil {
		t.Errorf("expected PNG to validate, got %v", err)
	}
}

func TestValidateRejectsNonImages(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"pdf", []byte("%PDF-1.4 some document body")},
		{"plain text", []byte("this is not a scan of anything")},
		{"html", []byte("<!DOCTYPE html><html></html>")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "upload.bin", tt.data)

			if err := Validate(path); !errors.Is(err, ErrNotImage) {
				t.Errorf("expected ErrNotImage, got %v", err)
			}
		})
	}
}

func TestValidateMissingFile(t *testing.T) {
	err := Validate(filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if errors.Is(err, ErrNotImage) {
		t.Error("a missing file is an I/O failure, not a format rejection")
	}
}
