package model

import (
	"time"

	"infosetu/config"
	"infosetu/i18n"
	"infosetu/storage"
)

// BusyState is the orchestrator's activity state. Exactly one value holds at
// a time; every input control is disabled while it is not Idle, which is
// what serializes the three input channels.
type BusyState int

const (
	Idle BusyState = iota
	AwaitingResponse
	ListeningForVoice
	ProcessingDocument
)

func (b BusyState) String() string {
	switch b {
	case AwaitingResponse:
		return "awaiting-response"
	case ListeningForVoice:
		return "listening"
	case ProcessingDocument:
		return "processing-document"
	default:
		return "idle"
	}
}

// Model holds the conversation state and business logic. It is the exclusive
// owner of the transcript and BusyState; the ui package only routes events
// and renders.
type Model struct {
	// Core dependencies
	Config         *config.Config
	Resolver       QueryResolver
	Synth          Synthesizer
	Voice          VoiceRecognizer
	Extractor      DocumentExtractor
	SessionStorage *storage.SessionStorage

	// Conversation state
	Messages      []Message
	Busy          BusyState
	Language      i18n.Language
	SpeechEnabled bool
	PendingInput  string // input pre-filled after a document upload
	Warning       string // transient validation warning

	CurrentSession     *storage.Session
	NeedsInitialRender bool
	Quitting           bool

	// Application metadata
	Version string
	License string
}

// NewModel creates the orchestrator model. The transcript always opens with
// the active language's welcome message, either freshly or restored from the
// last session.
func NewModel(cfg *config.Config, caps Capabilities, sessionStorage *storage.SessionStorage, lastSession *storage.Session, version, license string) *Model {
	lang := i18n.Language(cfg.DefaultLanguage)
	if lastSession != nil && i18n.Language(lastSession.Language).Valid() {
		lang = i18n.Language(lastSession.Language)
	}
	if !lang.Valid() {
		lang = i18n.English
	}

	var messages []Message
	needsRender := false
	if lastSession != nil {
		for _, sMsg := range lastSession.Messages {
			messages = append(messages, Message{
				Text:      sMsg.Text,
				IsUser:    sMsg.IsUser,
				Timestamp: sMsg.Timestamp,
			})
		}
		needsRender = len(messages) > 0
	}

	// The transcript is never empty: element 0 is the welcome message.
	if len(messages) == 0 {
		messages = []Message{{
			Text:      i18n.Table(lang).Welcome,
			Timestamp: time.Now(),
		}}
	}

	return &Model{
		Config:             cfg,
		Resolver:           caps.Resolver,
		Synth:              caps.Synth,
		Voice:              caps.Voice,
		Extractor:          caps.Extractor,
		SessionStorage:     sessionStorage,
		Messages:           messages,
		Busy:               Idle,
		Language:           lang,
		SpeechEnabled:      cfg.Speech.Enabled && caps.Synth != nil,
		CurrentSession:     lastSession,
		NeedsInitialRender: needsRender,
		Version:            version,
		License:            license,
	}
}

// Strings returns the UI string table for the active language.
func (m *Model) Strings() i18n.Strings {
	return i18n.Table(m.Language)
}

// InputEnabled reports whether submit/listen/upload controls are enabled.
func (m *Model) InputEnabled() bool {
	return m.Busy == Idle
}

// VoiceAvailable reports whether the voice capture capability is present.
func (m *Model) VoiceAvailable() bool {
	return m.Voice != nil
}

// UploadAvailable reports whether the document extraction capability is
// present.
func (m *Model) UploadAvailable() bool {
	return m.Extractor != nil
}
