package resolver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"infosetu/i18n"
)

// stubGenerator implements Generator with a configurable response.
type stubGenerator struct {
	response string
	err      error

	prompts []string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func TestResolveDeterministicMatch(t *testing.T) {
	r := New(NewRuleSet(testEntries()), nil)

	answer, err := r.Resolve(context.Background(), "tell me about pm-kisan", i18n.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "PM-KISAN answer" {
		t.Errorf("got %q", answer)
	}
}

func TestResolveNoMatchWithoutGenerator(t *testing.T) {
	r := New(NewRuleSet(testEntries()), nil)

	answer, err := r.Resolve(context.Background(), "asdfghjkl", i18n.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Which service do you need?" {
		t.Errorf("expected the default answer, got %q", answer)
	}
}

func TestResolveGenerativeFallback(t *testing.T) {
	gen := &stubGenerator{response: "  Generated guidance.  "}
	r := New(NewRuleSet(testEntries()), gen)

	answer, err := r.Resolve(context.Background(), "how do I open a post office account", i18n.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Generated guidance." {
		t.Errorf("expected trimmed generated answer, got %q", answer)
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("expected 1 generative call, got %d", len(gen.prompts))
	}
	if !strings.Contains(gen.prompts[0], "how do I open a post office account") {
		t.Error("persona prompt must embed the citizen message")
	}
}

func TestResolveSkipsGeneratorOnRuleMatch(t *testing.T) {
	gen := &stubGenerator{response: "should not be used"}
	r := New(NewRuleSet(testEntries()), gen)

	answer, err := r.Resolve(context.Background(), "aadhaar update", i18n.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Aadhaar services answer" {
		t.Errorf("got %q", answer)
	}
	if len(gen.prompts) != 0 {
		t.Errorf("generator must not run on a rule match, got %d calls", len(gen.prompts))
	}
}

func TestResolveConcealsGenerativeFaults(t *testing.T) {
	tests := []struct {
		name string
		gen  *stubGenerator
	}{
		{"generator error", &stubGenerator{err: errors.New("model unavailable")}},
		{"empty output", &stubGenerator{response: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(NewRuleSet(testEntries()), tt.gen)

			answer, err := r.Resolve(context.Background(), "something unmatched", i18n.English)
			if err != nil {
				t.Fatalf("faults must be concealed, got error: %v", err)
			}
			if answer != "Which service do you need?" {
				t.Errorf("expected the default answer, got %q", answer)
			}
		})
	}
}

func TestResolveInvalidLanguageDefaultsToEnglish(t *testing.T) {
	r := New(NewRuleSet(testEntries()), nil)

	answer, err := r.Resolve(context.Background(), "pension", i18n.Language("fr"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Pension answer" {
		t.Errorf("got %q", answer)
	}
}

func TestBuildPersonaPromptPerLanguage(t *testing.T) {
	en := BuildPersonaPrompt("my question", i18n.English)
	if !strings.Contains(en, "my question") {
		t.Error("English prompt must embed the message")
	}

	hi := BuildPersonaPrompt("मेरा प्रश्न", i18n.Hindi)
	if !strings.Contains(hi, "मेरा प्रश्न") {
		t.Error("Hindi prompt must embed the message")
	}
	if en == hi {
		t.Error("prompts must differ per language")
	}
}

func TestHasFallback(t *testing.T) {
	if New(NewRuleSet(testEntries()), nil).HasFallback() {
		t.Error("no generator means no fallback")
	}
	if !New(NewRuleSet(testEntries()), &stubGenerator{}).HasFallback() {
		t.Error("expected fallback with a generator")
	}
}
