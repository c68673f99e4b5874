// Package speech wraps the optional voice capabilities: speech synthesis via
// espeak-ng and single-shot voice capture via a recorder plus whisper.cpp.
// Both are external processes; absence of the binaries is detected at startup
// and surfaces as a nil adapter, never as a runtime fault.
package speech

import (
	"os/exec"
	"strconv"
	"sync"

	"infosetu/config"
	"infosetu/i18n"
)

// Synthesizer speaks answer text aloud through espeak-ng. At most one
// utterance plays at a time; starting a new one cancels the current.
type Synthesizer struct {
	espeakPath string
	rate       int

	mu      sync.Mutex
	current *exec.Cmd
}

// NewSynthesizer returns a synthesizer, or nil when espeak-ng is not on the
// PATH (the capability is absent).
func NewSynthesizer(cfg config.SpeechConfig) *Synthesizer {
	path, err := exec.LookPath(cfg.EspeakPath)
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Speech] espeak-ng not found (%v), speech output disabled", err)
		}
		return nil
	}

	rate := cfg.Rate
	if rate <= 0 {
		rate = 150
	}

	return &Synthesizer{
		espeakPath: path,
		rate:       rate,
	}
}

// espeak-ng voice codes per supported language.
func voiceFor(lang i18n.Language) string {
	if lang == i18n.Hindi {
		return "hi"
	}
	return "en-in"
}

// Speak plays text in the language's voice. Fire-and-forget: the process is
// started and left to finish on its own. Any playing utterance is cancelled
// first.
func (s *Synthesizer) Speak(text string, lang i18n.Language) {
	if text == "" {
		return
	}

	s.Cancel()

	cmd := exec.Command(s.espeakPath, "-v", voiceFor(lang), "-s", strconv.Itoa(s.rate), text)
	if err := cmd.Start(); err != nil {
		// Voice may be missing from the install; retry with the default voice.
		cmd = exec.Command(s.espeakPath, "-s", strconv.Itoa(s.rate), text)
		if err := cmd.Start(); err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Speech] espeak-ng start failed: %v", err)
			}
			return
		}
	}

	s.mu.Lock()
	s.current = cmd
	s.mu.Unlock()

	go func() {
		_ = cmd.Wait()
		s.mu.Lock()
		if s.current == cmd {
			s.current = nil
		}
		s.mu.Unlock()
	}()
}

// Cancel stops the currently playing utterance, if any.
func (s *Synthesizer) Cancel() {
	s.mu.Lock()
	cmd := s.current
	s.current = nil
	s.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}
