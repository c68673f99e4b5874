package speech

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"infosetu/config"
	"infosetu/i18n"
)

// ErrCanceled is the terminal outcome of a capture session stopped before a
// transcript was produced.
var ErrCanceled = errors.New("voice capture canceled")

// maxCaptureDuration bounds one capture session; recording is finalized and
// transcribed when it elapses.
const maxCaptureDuration = 15 * time.Second

// Result is the single terminal event of a capture session. Exactly one of
// these is delivered per session: a transcript, an error, or an empty
// transcript when recognition heard nothing.
type Result struct {
	Transcript string
	Err        error
}

// Recognizer captures one voice note at a time: an external recorder writes
// a WAV which whisper.cpp then transcribes. No interim results are surfaced.
type Recognizer struct {
	recorderPath string
	whisperPath  string
	whisperModel string

	mu       sync.Mutex
	cmd      *exec.Cmd
	canceled bool
}

// NewRecognizer returns a recognizer, or nil when the recorder or whisper
// binary is not on the PATH (the capability is absent).
func NewRecognizer(cfg config.SpeechConfig) *Recognizer {
	recorderPath, err := exec.LookPath(cfg.RecorderCmd)
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Speech] recorder not found (%v), voice input disabled", err)
		}
		return nil
	}

	whisperPath, err := exec.LookPath(cfg.WhisperPath)
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Speech] whisper not found (%v), voice input disabled", err)
		}
		return nil
	}

	return &Recognizer{
		recorderPath: recorderPath,
		whisperPath:  whisperPath,
		whisperModel: cfg.WhisperModel,
	}
}

// Start begins a capture session and returns a channel that carries the
// session's one terminal Result. The session ends when Finish or Stop is
// called, or when maxCaptureDuration elapses.
func (r *Recognizer) Start(lang i18n.Language) <-chan Result {
	results := make(chan Result, 1)

	wavPath := filepath.Join(config.GetTempDir(), fmt.Sprintf("capture-%d.wav", time.Now().UnixNano()))

	// 16 kHz mono signed 16-bit - what whisper expects.
	cmd := exec.Command(r.recorderPath, "-q", "-f", "S16_LE", "-r", "16000", "-c", "1", wavPath)

	r.mu.Lock()
	r.cmd = cmd
	r.canceled = false
	r.mu.Unlock()

	if err := cmd.Start(); err != nil {
		r.mu.Lock()
		r.cmd = nil
		r.mu.Unlock()
		results <- Result{Err: fmt.Errorf("failed to start recorder: %w", err)}
		return results
	}

	go func() {
		defer os.Remove(wavPath)

		done := make(chan struct{})
		go func() {
			// The recorder exits nonzero when interrupted; that is the
			// normal end of a session, not a fault.
			_ = cmd.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(maxCaptureDuration):
			r.Finish()
			<-done
		}

		r.mu.Lock()
		canceled := r.canceled
		r.cmd = nil
		r.mu.Unlock()

		if canceled {
			results <- Result{Err: ErrCanceled}
			return
		}

		text, err := r.transcribe(wavPath, lang)
		if err != nil {
			results <- Result{Err: err}
			return
		}

		results <- Result{Transcript: strings.TrimSpace(text)}
	}()

	return results
}

// Finish ends the recording phase; the session then proceeds to
// transcription and delivers its result.
func (r *Recognizer) Finish() {
	r.mu.Lock()
	cmd := r.cmd
	r.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		// Interrupt lets the recorder finalize the WAV header.
		_ = cmd.Process.Signal(os.Interrupt)
	}
}

// Stop cancels the session without emitting a transcript.
func (r *Recognizer) Stop() {
	r.mu.Lock()
	cmd := r.cmd
	r.canceled = true
	r.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}

// transcribe runs whisper.cpp on the recorded WAV and returns its stdout.
func (r *Recognizer) transcribe(wavPath string, lang i18n.Language) (string, error) {
	args := []string{"-f", wavPath, "-l", string(lang), "-nt"}
	if r.whisperModel != "" {
		args = append(args, "-m", config.ExpandPath(r.whisperModel))
	}

	cmd := exec.Command(r.whisperPath, args...)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	return out.String(), nil
}
