// Package testutil provides mock capabilities for orchestrator tests.
package testutil

import (
	"context"
	"sync"

	"infosetu/i18n"
	"infosetu/speech"
)

// CallLog records capability calls in invocation order. Shared across mocks
// so tests can assert cross-capability ordering, e.g. that playback is
// cancelled before voice capture starts.
type CallLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *CallLog) Record(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

// Calls returns a copy of the recorded call names in order.
func (l *CallLog) Calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.calls))
	copy(out, l.calls)
	return out
}

// MockResolver implements model.QueryResolver for testing
type MockResolver struct {
	Log         *CallLog
	ResolveFunc func(ctx context.Context, message string, lang i18n.Language) (string, error)

	mu      sync.Mutex
	queries []string
}

// NewMockResolver creates a resolver that answers every query with answer.
func NewMockResolver(answer string) *MockResolver {
	return &MockResolver{
		ResolveFunc: func(ctx context.Context, message string, lang i18n.Language) (string, error) {
			return answer, nil
		},
	}
}

func (m *MockResolver) Resolve(ctx context.Context, message string, lang i18n.Language) (string, error) {
	if m.Log != nil {
		m.Log.Record("resolver.Resolve")
	}
	m.mu.Lock()
	m.queries = append(m.queries, message)
	m.mu.Unlock()
	return m.ResolveFunc(ctx, message, lang)
}

// Queries returns every message the resolver was asked, in order.
func (m *MockResolver) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.queries))
	copy(out, m.queries)
	return out
}

// MockSynth implements model.Synthesizer for testing
type MockSynth struct {
	Log *CallLog

	mu      sync.Mutex
	spoken  []string
	cancels int
}

func (m *MockSynth) Speak(text string, lang i18n.Language) {
	if m.Log != nil {
		m.Log.Record("synth.Speak")
	}
	m.mu.Lock()
	m.spoken = append(m.spoken, text)
	m.mu.Unlock()
}

func (m *MockSynth) Cancel() {
	if m.Log != nil {
		m.Log.Record("synth.Cancel")
	}
	m.mu.Lock()
	m.cancels++
	m.mu.Unlock()
}

// Spoken returns every text passed to Speak, in order.
func (m *MockSynth) Spoken() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.spoken))
	copy(out, m.spoken)
	return out
}

// Cancels returns how many times Cancel was called.
func (m *MockSynth) Cancels() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancels
}

// MockVoice implements model.VoiceRecognizer for testing. Tests push the
// session's terminal event into Results.
type MockVoice struct {
	Log     *CallLog
	Results chan speech.Result

	mu       sync.Mutex
	starts   int
	finishes int
	stops    int
}

func NewMockVoice() *MockVoice {
	return &MockVoice{
		Results: make(chan speech.Result, 1),
	}
}

func (m *MockVoice) Start(lang i18n.Language) <-chan speech.Result {
	if m.Log != nil {
		m.Log.Record("voice.Start")
	}
	m.mu.Lock()
	m.starts++
	m.mu.Unlock()
	return m.Results
}

func (m *MockVoice) Finish() {
	if m.Log != nil {
		m.Log.Record("voice.Finish")
	}
	m.mu.Lock()
	m.finishes++
	m.mu.Unlock()
}

func (m *MockVoice) Stop() {
	if m.Log != nil {
		m.Log.Record("voice.Stop")
	}
	m.mu.Lock()
	m.stops++
	m.mu.Unlock()
}

func (m *MockVoice) Starts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.starts
}

func (m *MockVoice) Finishes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finishes
}

func (m *MockVoice) Stops() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stops
}

// MockExtractor implements model.DocumentExtractor for testing
type MockExtractor struct {
	Log          *CallLog
	ValidateFunc func(path string) error
	ExtractFunc  func(ctx context.Context, path string, lang i18n.Language) (string, error)

	mu       sync.Mutex
	extracts int
}

// NewMockExtractor creates an extractor that accepts every file and returns
// text for every extraction.
func NewMockExtractor(text string) *MockExtractor {
	return &MockExtractor{
		ValidateFunc: func(path string) error { return nil },
		ExtractFunc: func(ctx context.Context, path string, lang i18n.Language) (string, error) {
			return text, nil
		},
	}
}

func (m *MockExtractor) Validate(path string) error {
	if m.Log != nil {
		m.Log.Record("extractor.Validate")
	}
	return m.ValidateFunc(path)
}

func (m *MockExtractor) Extract(ctx context.Context, path string, lang i18n.Language) (string, error) {
	if m.Log != nil {
		m.Log.Record("extractor.Extract")
	}
	m.mu.Lock()
	m.extracts++
	m.mu.Unlock()
	return m.ExtractFunc(ctx, path, lang)
}

// Extracts returns how many times Extract was called.
func (m *MockExtractor) Extracts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.extracts
}
