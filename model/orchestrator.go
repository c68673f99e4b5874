package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"infosetu/config"
	"infosetu/i18n"
	"infosetu/storage"
)

const (
	resolveTimeout = 120 * time.Second
	extractTimeout = 60 * time.Second

	// docExcerptRunes is how much of an extracted document is quoted back
	// to the citizen.
	docExcerptRunes = 150
)

// SubmitText appends the citizen's message and asks the resolver for an
// answer. Valid only while Idle; empty or whitespace-only text is a no-op.
func (m *Model) SubmitText(text string) tea.Cmd {
	if m.Busy != Idle {
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	m.Warning = ""
	m.Messages = append(m.Messages, Message{
		Text:      text,
		IsUser:    true,
		Timestamp: time.Now(),
	})
	m.PendingInput = ""
	m.Busy = AwaitingResponse

	resolver := m.Resolver
	lang := m.Language

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()

		answer, err := resolver.Resolve(ctx, text, lang)
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Orchestrator] resolver fault: %v", err)
			}
			return AnswerMsg{Err: err}
		}
		return AnswerMsg{Answer: answer}
	}
}

// ApplyAnswer appends the assistant turn for a completed submission. Exactly
// one assistant message is appended whether the resolver succeeded or
// faulted; a fault yields the fixed apology message instead.
func (m *Model) ApplyAnswer(msg AnswerMsg) tea.Cmd {
	if m.Busy != AwaitingResponse {
		return nil
	}

	text := msg.Answer
	if msg.Err != nil {
		text = m.Strings().ConnectionError
	}

	m.Messages = append(m.Messages, Message{
		Text:      text,
		Timestamp: time.Now(),
	})
	m.Busy = Idle

	if m.SpeechEnabled && m.Synth != nil {
		m.Synth.Speak(text, m.Language)
	}

	return m.SaveSessionCmd()
}

// StartListening opens a voice capture session. Valid only while Idle and
// when the capability is present. Playback is always cancelled before
// capture starts.
func (m *Model) StartListening() tea.Cmd {
	if m.Busy != Idle || m.Voice == nil {
		return nil
	}

	m.Warning = ""
	if m.Synth != nil {
		m.Synth.Cancel()
	}
	m.Busy = ListeningForVoice

	results := m.Voice.Start(m.Language)

	return func() tea.Msg {
		res := <-results
		return VoiceResultMsg{Transcript: res.Transcript, Err: res.Err}
	}
}

// FinishListening ends the recording phase; the transcript (if any) arrives
// as a VoiceResultMsg.
func (m *Model) FinishListening() {
	if m.Busy == ListeningForVoice && m.Voice != nil {
		m.Voice.Finish()
	}
}

// StopListening cancels the capture session; no transcript will be emitted.
func (m *Model) StopListening() {
	if m.Busy == ListeningForVoice && m.Voice != nil {
		m.Voice.Stop()
	}
}

// ApplyVoiceResult handles a capture session's terminal event. A transcript
// auto-submits; cancellation, errors, and silence return to Idle with no
// message appended.
func (m *Model) ApplyVoiceResult(msg VoiceResultMsg) tea.Cmd {
	if m.Busy != ListeningForVoice {
		return nil
	}
	m.Busy = Idle

	if msg.Err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Orchestrator] voice capture ended: %v", msg.Err)
		}
		return nil
	}
	if strings.TrimSpace(msg.Transcript) == "" {
		return nil
	}

	return m.SubmitText(msg.Transcript)
}

// UploadDocument validates and extracts a scanned document. A non-image file
// is rejected immediately with a warning and no state change.
func (m *Model) UploadDocument(path string) tea.Cmd {
	if m.Busy != Idle || m.Extractor == nil {
		return nil
	}

	if err := m.Extractor.Validate(path); err != nil {
		m.Warning = m.Strings().NotImageWarning
		return nil
	}

	m.Warning = ""
	m.Busy = ProcessingDocument

	extractor := m.Extractor
	lang := m.Language

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
		defer cancel()

		text, err := extractor.Extract(ctx, path, lang)
		return ExtractionMsg{Text: text, Err: err}
	}
}

// ApplyExtraction appends the document summary turn and pre-fills the input
// with a follow-up question. An extraction fault is a no-result: the
// conversation simply returns to Idle.
func (m *Model) ApplyExtraction(msg ExtractionMsg) tea.Cmd {
	if m.Busy != ProcessingDocument {
		return nil
	}
	m.Busy = Idle

	if msg.Err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Orchestrator] extraction failed: %v", msg.Err)
		}
		return nil
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	tbl := m.Strings()
	m.Messages = append(m.Messages, Message{
		Text:      fmt.Sprintf(tbl.DocSummaryPrompt, firstRunes(text, docExcerptRunes)),
		Timestamp: time.Now(),
	})
	m.PendingInput = tbl.DocFollowUp

	return m.SaveSessionCmd()
}

// ChangeLanguage switches the active language. Valid from any state and
// leaves BusyState untouched. Only the welcome message at index 0 is
// rewritten; the rest of the transcript stays as spoken.
func (m *Model) ChangeLanguage(lang i18n.Language) {
	if !lang.Valid() || lang == m.Language {
		return
	}

	m.Language = lang
	if len(m.Messages) > 0 && !m.Messages[0].IsUser {
		m.Messages[0].Text = i18n.Table(lang).Welcome
		m.Messages[0].Rendered = ""
	}
	if m.CurrentSession != nil {
		m.CurrentSession.Language = string(lang)
	}
}

// ToggleLanguage switches to the other supported language.
func (m *Model) ToggleLanguage() {
	m.ChangeLanguage(m.Language.Toggle())
}

// QuickHelp submits a language-appropriate question about one of the six
// services.
func (m *Model) QuickHelp(svc i18n.Service) tea.Cmd {
	label := svc.Label[m.Language]
	if label == "" {
		label = svc.Label[i18n.English]
	}
	return m.SubmitText(fmt.Sprintf(m.Strings().QuickHelpAsk, label))
}

// ToggleSpeech flips speech playback. Turning it off silences the current
// utterance.
func (m *Model) ToggleSpeech() {
	if m.Synth == nil {
		return
	}
	m.SpeechEnabled = !m.SpeechEnabled
	if !m.SpeechEnabled {
		m.Synth.Cancel()
	}
}

// SaveSessionCmd persists the transcript. No-op without session storage.
func (m *Model) SaveSessionCmd() tea.Cmd {
	if m.SessionStorage == nil {
		return nil
	}

	if m.CurrentSession == nil {
		m.CurrentSession = &storage.Session{}
	}
	sess := m.CurrentSession
	sess.Language = string(m.Language)
	if sess.Name == "" {
		sess.Name = m.sessionName()
	}
	sess.Messages = make([]storage.Message, len(m.Messages))
	for i, msg := range m.Messages {
		sess.Messages[i] = storage.Message{
			Text:      msg.Text,
			IsUser:    msg.IsUser,
			Timestamp: msg.Timestamp,
		}
	}

	store := m.SessionStorage
	return func() tea.Msg {
		if err := store.Save(sess); err != nil {
			return SessionSavedMsg{Err: err}
		}
		return SessionSavedMsg{Err: store.SaveCurrentSessionID(sess.ID)}
	}
}

// sessionName derives a session name from the first citizen message.
func (m *Model) sessionName() string {
	for _, msg := range m.Messages {
		if msg.IsUser {
			return firstRunes(msg.Text, 40)
		}
	}
	return "Conversation " + time.Now().Format("2006-01-02 15:04")
}

// firstRunes returns at most n runes of s. Counting runes keeps Devanagari
// excerpts intact.
func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
