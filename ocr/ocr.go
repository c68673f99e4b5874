// Package ocr wraps the optional document text-extraction capability
// (Tesseract). Only image files are accepted; anything else is rejected
// before extraction starts.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"infosetu/config"
	"infosetu/i18n"
)

// ErrNotImage is the validation signal for uploads whose content is not an
// image. No extraction is attempted for these.
var ErrNotImage = errors.New("file is not an image")

// Extractor converts a scanned document image into text.
type Extractor struct {
	tesseractPath string
}

// NewExtractor returns an extractor, or nil when tesseract is not on the
// PATH (the capability is absent).
func NewExtractor(cfg config.OCRConfig) *Extractor {
	path, err := exec.LookPath(cfg.TesseractPath)
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[OCR] tesseract not found (%v), document upload disabled", err)
		}
		return nil
	}

	return &Extractor{tesseractPath: path}
}

// Validate sniffs the file content and returns ErrNotImage unless it is an
// image. Runs before any extraction resource is acquired.
func Validate(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		return fmt.Errorf("failed to read document: %w", err)
	}

	contentType := http.DetectContentType(buf[:n])
	if len(contentType) < 6 || contentType[:6] != "image/" {
		return ErrNotImage
	}

	return nil
}

// Validate implements the validation step on the extractor, so callers hold
// a single handle for the whole capability.
func (e *Extractor) Validate(path string) error {
	return Validate(path)
}

// Extract runs Tesseract over the image and returns the recognized text.
// The scratch output file is removed whether or not extraction succeeds.
func (e *Extractor) Extract(ctx context.Context, path string, lang i18n.Language) (string, error) {
	if err := Validate(path); err != nil {
		return "", err
	}

	outBase := filepath.Join(config.GetTempDir(), fmt.Sprintf("ocr-%d", time.Now().UnixNano()))
	outPath := outBase + ".txt"
	defer os.Remove(outPath)

	cmd := exec.CommandContext(ctx, e.tesseractPath, path, outBase, "-l", lang.OCRCode())
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("extraction failed: %w (%s)", err, bytes.TrimSpace(stderr.Bytes()))
	}

	text, err := os.ReadFile(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to read extraction output: %w", err)
	}

	return string(bytes.TrimSpace(text)), nil
}
