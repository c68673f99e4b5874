package i18n

import (
	"strings"
	"testing"
)

func TestToggle(t *testing.T) {
	if English.Toggle() != Hindi {
		t.Error("English must toggle to Hindi")
	}
	if Hindi.Toggle() != English {
		t.Error("Hindi must toggle to English")
	}
}

func TestValid(t *testing.T) {
	if !English.Valid() || !Hindi.Valid() {
		t.Error("supported languages must be valid")
	}
	if Language("fr").Valid() || Language("").Valid() {
		t.Error("unsupported languages must be invalid")
	}
}

func TestLocale(t *testing.T) {
	if got := English.Locale().String(); got != "en-IN" {
		t.Errorf("English locale = %q, want en-IN", got)
	}
	if got := Hindi.Locale().String(); got != "hi-IN" {
		t.Errorf("Hindi locale = %q, want hi-IN", got)
	}
	if got := Language("fr").Locale().String(); got != "en-IN" {
		t.Errorf("unknown language locale = %q, want en-IN", got)
	}
}

func TestOCRCode(t *testing.T) {
	if English.OCRCode() != "eng" {
		t.Error("English OCR code must be eng")
	}
	if Hindi.OCRCode() != "hin" {
		t.Error("Hindi OCR code must be hin")
	}
}

func TestTablesComplete(t *testing.T) {
	for _, lang := range []Language{English, Hindi} {
		tbl := Table(lang)

		if tbl.Welcome == "" {
			t.Errorf("%s: missing welcome", lang)
		}
		if tbl.ConnectionError == "" {
			t.Errorf("%s: missing connection error", lang)
		}
		if tbl.NotImageWarning == "" {
			t.Errorf("%s: missing non-image warning", lang)
		}
		if !strings.Contains(tbl.DocSummaryPrompt, "%s") {
			t.Errorf("%s: document summary prompt must take the excerpt", lang)
		}
		if !strings.Contains(tbl.QuickHelpAsk, "%s") {
			t.Errorf("%s: quick-help question must take the service label", lang)
		}
	}

	if Table(English).Welcome == Table(Hindi).Welcome {
		t.Error("welcome messages must differ per language")
	}
}

func TestTableUnknownLanguageFallsBack(t *testing.T) {
	if Table(Language("fr")).Welcome != Table(English).Welcome {
		t.Error("unknown languages must fall back to English strings")
	}
}

func TestServicesHaveBothLabels(t *testing.T) {
	if len(Services) != 6 {
		t.Fatalf("expected 6 quick-help services, got %d", len(Services))
	}
	for _, svc := range Services {
		if svc.ID == "" {
			t.Error("service without an ID")
		}
		if svc.Label[English] == "" || svc.Label[Hindi] == "" {
			t.Errorf("service %s missing a label", svc.ID)
		}
	}
}
