package model

import (
	"testing"
	"time"

	"infosetu/i18n"
	"infosetu/model/testutil"
	"infosetu/storage"
)

func TestNewModelRestoresSession(t *testing.T) {
	last := &storage.Session{
		ID:       "abc",
		Language: "hi",
		Messages: []storage.Message{
			{Text: "welcome text", Timestamp: time.Now()},
			{Text: "mera ration card", IsUser: true, Timestamp: time.Now()},
		},
	}

	m := NewModel(testConfig(), Capabilities{Resolver: testutil.NewMockResolver("ok")}, nil, last, "test", "Apache-2.0")

	if m.Language != i18n.Hindi {
		t.Errorf("expected session language hi, got %v", m.Language)
	}
	if len(m.Messages) != 2 {
		t.Fatalf("expected 2 restored messages, got %d", len(m.Messages))
	}
	if !m.Messages[1].IsUser || m.Messages[1].Text != "mera ration card" {
		t.Errorf("unexpected restored message: %+v", m.Messages[1])
	}
	if !m.NeedsInitialRender {
		t.Error("restored transcript must request an initial render")
	}
}

func TestNewModelIgnoresInvalidSessionLanguage(t *testing.T) {
	last := &storage.Session{Language: "fr"}

	m := NewModel(testConfig(), Capabilities{Resolver: testutil.NewMockResolver("ok")}, nil, last, "test", "Apache-2.0")

	if m.Language != i18n.English {
		t.Errorf("expected config default language, got %v", m.Language)
	}
}

func TestSpeechEnabledRequiresCapability(t *testing.T) {
	m := NewModel(testConfig(), Capabilities{Resolver: testutil.NewMockResolver("ok")}, nil, nil, "test", "Apache-2.0")
	if m.SpeechEnabled {
		t.Error("speech must be off without a synthesizer")
	}

	m = NewModel(testConfig(), Capabilities{
		Resolver: testutil.NewMockResolver("ok"),
		Synth:    &testutil.MockSynth{},
	}, nil, nil, "test", "Apache-2.0")
	if !m.SpeechEnabled {
		t.Error("speech must be on with a synthesizer and enabled config")
	}
}

func TestSaveSessionCmdPersistsTranscript(t *testing.T) {
	store, err := storage.NewSessionStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create session storage: %v", err)
	}

	m := NewModel(testConfig(), Capabilities{Resolver: testutil.NewMockResolver("answer")}, store, nil, "test", "Apache-2.0")

	msg := m.SubmitText("aadhaar update")().(AnswerMsg)
	saveCmd := m.ApplyAnswer(msg)
	if saveCmd == nil {
		t.Fatal("expected a save command")
	}
	if saved, ok := saveCmd().(SessionSavedMsg); !ok || saved.Err != nil {
		t.Fatalf("save failed: %+v", saved)
	}

	id, err := store.LoadCurrentSessionID()
	if err != nil {
		t.Fatalf("failed to load current session id: %v", err)
	}
	sess, err := store.Load(id)
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}

	if len(sess.Messages) != 3 {
		t.Fatalf("expected 3 persisted messages, got %d", len(sess.Messages))
	}
	if sess.Name != "aadhaar update" {
		t.Errorf("expected session named after first citizen message, got %q", sess.Name)
	}
	if sess.Language != "en" {
		t.Errorf("expected language en, got %q", sess.Language)
	}
}

func TestBusyStateStrings(t *testing.T) {
	tests := []struct {
		state BusyState
		want  string
	}{
		{Idle, "idle"},
		{AwaitingResponse, "awaiting-response"},
		{ListeningForVoice, "listening"},
		{ProcessingDocument, "processing-document"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
