package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"infosetu/config"
	"infosetu/i18n"
	"infosetu/model/testutil"
	"infosetu/speech"
)

func testConfig() *config.Config {
	return &config.Config{
		DefaultLanguage: "en",
		Speech:          config.SpeechConfig{Enabled: true},
	}
}

func newTestModel(caps Capabilities) *Model {
	return NewModel(testConfig(), caps, nil, nil, "test", "Apache-2.0")
}

func TestNewModelTranscriptNeverEmpty(t *testing.T) {
	m := newTestModel(Capabilities{Resolver: testutil.NewMockResolver("ok")})

	if len(m.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(m.Messages))
	}
	if m.Messages[0].IsUser {
		t.Error("welcome message must be an assistant message")
	}
	if m.Messages[0].Text != i18n.Table(i18n.English).Welcome {
		t.Errorf("expected English welcome, got %q", m.Messages[0].Text)
	}
	if m.Busy != Idle {
		t.Errorf("expected Idle, got %v", m.Busy)
	}
}

func TestSubmitTextAppendsExactlyTwoMessages(t *testing.T) {
	resolver := testutil.NewMockResolver("PM-KISAN provides income support.")
	m := newTestModel(Capabilities{Resolver: resolver})
	before := len(m.Messages)

	cmd := m.SubmitText("tell me about pm-kisan")
	if cmd == nil {
		t.Fatal("expected a resolve command")
	}
	if m.Busy != AwaitingResponse {
		t.Fatalf("expected AwaitingResponse, got %v", m.Busy)
	}

	raw := cmd()
	msg, ok := raw.(AnswerMsg)
	if !ok {
		t.Fatalf("expected AnswerMsg, got %T", raw)
	}
	m.ApplyAnswer(msg)

	if len(m.Messages) != before+2 {
		t.Fatalf("expected %d messages, got %d", before+2, len(m.Messages))
	}
	user := m.Messages[len(m.Messages)-2]
	assistant := m.Messages[len(m.Messages)-1]
	if !user.IsUser || user.Text != "tell me about pm-kisan" {
		t.Errorf("unexpected user message: %+v", user)
	}
	if assistant.IsUser || assistant.Text != "PM-KISAN provides income support." {
		t.Errorf("unexpected assistant message: %+v", assistant)
	}
	if m.Busy != Idle {
		t.Errorf("expected Idle after answer, got %v", m.Busy)
	}
}

func TestSubmitTextEmptyIsNoOp(t *testing.T) {
	resolver := testutil.NewMockResolver("ok")
	m := newTestModel(Capabilities{Resolver: resolver})
	before := len(m.Messages)

	for _, text := range []string{"", "   ", "\t\n"} {
		if cmd := m.SubmitText(text); cmd != nil {
			t.Errorf("SubmitText(%q) should be a no-op", text)
		}
	}

	if len(m.Messages) != before {
		t.Errorf("transcript changed on empty submit: %d -> %d", before, len(m.Messages))
	}
	if m.Busy != Idle {
		t.Errorf("expected Idle, got %v", m.Busy)
	}
	if len(resolver.Queries()) != 0 {
		t.Errorf("resolver should not be called, got %v", resolver.Queries())
	}
}

func TestSubmitTextRejectedWhileBusy(t *testing.T) {
	resolver := testutil.NewMockResolver("ok")
	m := newTestModel(Capabilities{Resolver: resolver})

	for _, busy := range []BusyState{AwaitingResponse, ListeningForVoice, ProcessingDocument} {
		m.Busy = busy
		before := len(m.Messages)
		if cmd := m.SubmitText("hello"); cmd != nil {
			t.Errorf("SubmitText must be rejected while %v", busy)
		}
		if len(m.Messages) != before {
			t.Errorf("transcript changed while %v", busy)
		}
	}
}

func TestResolverFaultYieldsApology(t *testing.T) {
	resolver := &testutil.MockResolver{
		ResolveFunc: func(ctx context.Context, message string, lang i18n.Language) (string, error) {
			return "", errors.New("connection refused")
		},
	}
	m := newTestModel(Capabilities{Resolver: resolver})
	before := len(m.Messages)

	cmd := m.SubmitText("pension")
	msg := cmd().(AnswerMsg)
	if msg.Err == nil {
		t.Fatal("expected a resolver fault")
	}
	m.ApplyAnswer(msg)

	if len(m.Messages) != before+2 {
		t.Fatalf("fault must still append exactly 2 messages, got %d new", len(m.Messages)-before)
	}
	assistant := m.Messages[len(m.Messages)-1]
	if assistant.Text != i18n.Table(i18n.English).ConnectionError {
		t.Errorf("expected apology message, got %q", assistant.Text)
	}
	if m.Busy != Idle {
		t.Errorf("expected Idle after fault, got %v", m.Busy)
	}
}

func TestApplyAnswerSpeaksWhenEnabled(t *testing.T) {
	synth := &testutil.MockSynth{}
	m := newTestModel(Capabilities{Resolver: testutil.NewMockResolver("answer"), Synth: synth})

	msg := m.SubmitText("hello")().(AnswerMsg)
	m.ApplyAnswer(msg)

	if got := synth.Spoken(); len(got) != 1 || got[0] != "answer" {
		t.Errorf("expected answer to be spoken once, got %v", got)
	}

	m.SpeechEnabled = false
	msg = m.SubmitText("again")().(AnswerMsg)
	m.ApplyAnswer(msg)

	if got := synth.Spoken(); len(got) != 1 {
		t.Errorf("disabled speech must not speak, got %v", got)
	}
}

func TestStartListeningCancelsPlaybackFirst(t *testing.T) {
	log := &testutil.CallLog{}
	synth := &testutil.MockSynth{Log: log}
	voice := testutil.NewMockVoice()
	voice.Log = log
	m := newTestModel(Capabilities{Resolver: testutil.NewMockResolver("ok"), Synth: synth, Voice: voice})

	if cmd := m.StartListening(); cmd == nil {
		t.Fatal("expected a listen command")
	}
	if m.Busy != ListeningForVoice {
		t.Fatalf("expected ListeningForVoice, got %v", m.Busy)
	}

	calls := log.Calls()
	if len(calls) != 2 || calls[0] != "synth.Cancel" || calls[1] != "voice.Start" {
		t.Errorf("playback must be cancelled strictly before capture starts, got %v", calls)
	}
}

func TestStartListeningGuards(t *testing.T) {
	voice := testutil.NewMockVoice()
	m := newTestModel(Capabilities{Resolver: testutil.NewMockResolver("ok"), Voice: voice})

	m.Busy = AwaitingResponse
	if cmd := m.StartListening(); cmd != nil {
		t.Error("StartListening must be rejected while busy")
	}
	if voice.Starts() != 0 {
		t.Errorf("capture must not start while busy, got %d starts", voice.Starts())
	}

	m.Busy = Idle
	noVoice := newTestModel(Capabilities{Resolver: testutil.NewMockResolver("ok")})
	if cmd := noVoice.StartListening(); cmd != nil {
		t.Error("StartListening must be rejected without the capability")
	}
}

func TestVoiceTranscriptAutoSubmits(t *testing.T) {
	resolver := testutil.NewMockResolver("ok")
	voice := testutil.NewMockVoice()
	m := newTestModel(Capabilities{Resolver: resolver, Voice: voice})

	cmd := m.StartListening()
	voice.Results <- speech.Result{Transcript: "aadhaar card update"}
	msg := cmd().(VoiceResultMsg)

	submitCmd := m.ApplyVoiceResult(msg)
	if submitCmd == nil {
		t.Fatal("transcript must auto-submit")
	}
	if m.Busy != AwaitingResponse {
		t.Fatalf("expected AwaitingResponse, got %v", m.Busy)
	}
	user := m.Messages[len(m.Messages)-1]
	if !user.IsUser || user.Text != "aadhaar card update" {
		t.Errorf("expected transcript as user message, got %+v", user)
	}
}

func TestVoiceErrorAndSilenceReturnToIdle(t *testing.T) {
	tests := []struct {
		name   string
		result speech.Result
	}{
		{"capture error", speech.Result{Err: errors.New("microphone unavailable")}},
		{"cancelled", speech.Result{Err: speech.ErrCanceled}},
		{"silence", speech.Result{Transcript: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			voice := testutil.NewMockVoice()
			m := newTestModel(Capabilities{Resolver: testutil.NewMockResolver("ok"), Voice: voice})
			before := len(m.Messages)

			cmd := m.StartListening()
			voice.Results <- tt.result
			msg := cmd().(VoiceResultMsg)

			if next := m.ApplyVoiceResult(msg); next != nil {
				t.Error("no follow-up command expected")
			}
			if m.Busy != Idle {
				t.Errorf("expected Idle, got %v", m.Busy)
			}
			if len(m.Messages) != before {
				t.Errorf("transcript must be unchanged, got %d new messages", len(m.Messages)-before)
			}
		})
	}
}

func TestStopListeningForwardsToCapability(t *testing.T) {
	voice := testutil.NewMockVoice()
	m := newTestModel(Capabilities{Resolver: testutil.NewMockResolver("ok"), Voice: voice})

	m.StopListening()
	if voice.Stops() != 0 {
		t.Error("Stop must not be forwarded while not listening")
	}

	m.StartListening()
	m.StopListening()
	if voice.Stops() != 1 {
		t.Errorf("expected 1 stop, got %d", voice.Stops())
	}

	m.FinishListening()
	if voice.Finishes() != 1 {
		t.Errorf("expected 1 finish, got %d", voice.Finishes())
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	extractor := testutil.NewMockExtractor("text")
	extractor.ValidateFunc = func(path string) error { return errors.New("file is not an image") }
	m := newTestModel(Capabilities{Resolver: testutil.NewMockResolver("ok"), Extractor: extractor})
	before := len(m.Messages)

	if cmd := m.UploadDocument("/tmp/notes.pdf"); cmd != nil {
		t.Error("rejected upload must not produce a command")
	}

	if m.Warning != i18n.Table(i18n.English).NotImageWarning {
		t.Errorf("expected non-image warning, got %q", m.Warning)
	}
	if m.Busy != Idle {
		t.Errorf("rejection must not change state, got %v", m.Busy)
	}
	if len(m.Messages) != before {
		t.Error("rejection must not touch the transcript")
	}
	if extractor.Extracts() != 0 {
		t.Errorf("no extraction expected, got %d", extractor.Extracts())
	}
}

func TestUploadDocumentSummarizesExtractedText(t *testing.T) {
	longText := strings.Repeat("न", 200)
	extractor := testutil.NewMockExtractor(longText)
	m := newTestModel(Capabilities{Resolver: testutil.NewMockResolver("ok"), Extractor: extractor})
	before := len(m.Messages)

	cmd := m.UploadDocument("/tmp/scan.png")
	if cmd == nil {
		t.Fatal("expected an extraction command")
	}
	if m.Busy != ProcessingDocument {
		t.Fatalf("expected ProcessingDocument, got %v", m.Busy)
	}

	msg := cmd().(ExtractionMsg)
	m.ApplyExtraction(msg)

	if extractor.Extracts() != 1 {
		t.Fatalf("expected exactly 1 extraction, got %d", extractor.Extracts())
	}
	if len(m.Messages) != before+1 {
		t.Fatalf("expected 1 summary message, got %d new", len(m.Messages)-before)
	}

	tbl := i18n.Table(i18n.English)
	want := fmt.Sprintf(tbl.DocSummaryPrompt, strings.Repeat("न", 150))
	summary := m.Messages[len(m.Messages)-1]
	if summary.IsUser {
		t.Error("summary must be an assistant message")
	}
	if summary.Text != want {
		t.Errorf("summary excerpt mismatch:\n got %q\nwant %q", summary.Text, want)
	}
	if m.PendingInput != tbl.DocFollowUp {
		t.Errorf("expected follow-up pre-fill %q, got %q", tbl.DocFollowUp, m.PendingInput)
	}
	if m.Busy != Idle {
		t.Errorf("expected Idle, got %v", m.Busy)
	}
}

func TestUploadDocumentFaultReturnsToIdle(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
	}{
		{"extraction error", "", errors.New("tesseract exited 1")},
		{"no text found", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := testutil.NewMockExtractor("")
			extractor.ExtractFunc = func(ctx context.Context, path string, lang i18n.Language) (string, error) {
				return tt.text, tt.err
			}
			m := newTestModel(Capabilities{Resolver: testutil.NewMockResolver("ok"), Extractor: extractor})
			before := len(m.Messages)

			cmd := m.UploadDocument("/tmp/scan.png")
			msg := cmd().(ExtractionMsg)
			m.ApplyExtraction(msg)

			if m.Busy != Idle {
				t.Errorf("expected Idle, got %v", m.Busy)
			}
			if len(m.Messages) != before {
				t.Error("failed extraction must not append a message")
			}
			if m.PendingInput != "" {
				t.Errorf("no follow-up pre-fill expected, got %q", m.PendingInput)
			}
		})
	}
}

func TestChangeLanguageRewritesOnlyWelcome(t *testing.T) {
	m := newTestModel(Capabilities{Resolver: testutil.NewMockResolver("PM-KISAN info")})

	msg := m.SubmitText("pm-kisan")().(AnswerMsg)
	m.ApplyAnswer(msg)

	userText := m.Messages[1].Text
	assistantText := m.Messages[2].Text

	m.ChangeLanguage(i18n.Hindi)

	if m.Language != i18n.Hindi {
		t.Fatalf("expected Hindi, got %v", m.Language)
	}
	if m.Messages[0].Text != i18n.Table(i18n.Hindi).Welcome {
		t.Errorf("welcome must be rewritten, got %q", m.Messages[0].Text)
	}
	if m.Messages[1].Text != userText || m.Messages[2].Text != assistantText {
		t.Error("messages after the welcome must stay as spoken")
	}
}

func TestChangeLanguageAllowedWhileBusy(t *testing.T) {
	m := newTestModel(Capabilities{Resolver: testutil.NewMockResolver("ok")})
	m.Busy = AwaitingResponse

	m.ChangeLanguage(i18n.Hindi)

	if m.Language != i18n.Hindi {
		t.Error("language switch must work in any state")
	}
	if m.Busy != AwaitingResponse {
		t.Errorf("language switch must not touch BusyState, got %v", m.Busy)
	}
}

func TestChangeLanguageSameLanguageIsNoOp(t *testing.T) {
	m := newTestModel(Capabilities{Resolver: testutil.NewMockResolver("ok")})
	m.Messages[0].Rendered = "cached"

	m.ChangeLanguage(i18n.English)

	if m.Messages[0].Rendered != "cached" {
		t.Error("same-language switch must not invalidate the render cache")
	}

	m.ChangeLanguage(i18n.Language("fr"))
	if m.Language != i18n.English {
		t.Error("unsupported language must be ignored")
	}
}

func TestToggleLanguageRoundTrips(t *testing.T) {
	m := newTestModel(Capabilities{Resolver: testutil.NewMockResolver("ok")})

	m.ToggleLanguage()
	if m.Language != i18n.Hindi {
		t.Fatalf("expected Hindi, got %v", m.Language)
	}
	m.ToggleLanguage()
	if m.Language != i18n.English {
		t.Fatalf("expected English, got %v", m.Language)
	}
	if m.Messages[0].Text != i18n.Table(i18n.English).Welcome {
		t.Error("welcome must round-trip with the language")
	}
}

func TestQuickHelpSubmitsServiceQuestion(t *testing.T) {
	resolver := testutil.NewMockResolver("ok")
	m := newTestModel(Capabilities{Resolver: resolver})

	cmd := m.QuickHelp(i18n.Services[0])
	if cmd == nil {
		t.Fatal("expected a submit command")
	}

	user := m.Messages[len(m.Messages)-1]
	if user.Text != "Tell me about PM-KISAN Scheme" {
		t.Errorf("unexpected quick-help question: %q", user.Text)
	}

	msg := cmd().(AnswerMsg)
	m.ApplyAnswer(msg)

	m.ChangeLanguage(i18n.Hindi)
	m.QuickHelp(i18n.Services[1])
	user = m.Messages[len(m.Messages)-1]
	if user.Text != "मुझे आधार सेवाएँ के बारे में बताइए" {
		t.Errorf("unexpected Hindi quick-help question: %q", user.Text)
	}
}

func TestToggleSpeechCancelsPlayback(t *testing.T) {
	synth := &testutil.MockSynth{}
	m := newTestModel(Capabilities{Resolver: testutil.NewMockResolver("ok"), Synth: synth})

	m.ToggleSpeech()
	if m.SpeechEnabled {
		t.Error("expected speech disabled")
	}
	if synth.Cancels() != 1 {
		t.Errorf("disabling speech must cancel playback, got %d cancels", synth.Cancels())
	}

	m.ToggleSpeech()
	if !m.SpeechEnabled {
		t.Error("expected speech re-enabled")
	}
	if synth.Cancels() != 1 {
		t.Error("re-enabling speech must not cancel")
	}
}

func TestFirstRunesKeepsShortStrings(t *testing.T) {
	if got := firstRunes("hello", 150); got != "hello" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	if got := firstRunes("नमस्ते", 3); got != "नमस" {
		t.Errorf("expected rune-safe cut, got %q", got)
	}
}
