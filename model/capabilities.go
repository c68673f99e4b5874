package model

import (
	"context"

	"infosetu/i18n"
	"infosetu/speech"
)

// QueryResolver produces an answer for a citizen query. The built-in
// resolver is fail-soft and always returns a nil error; the error return
// exists for transport-backed resolvers, whose faults the orchestrator
// converts to the fixed apology message.
type QueryResolver interface {
	Resolve(ctx context.Context, message string, lang i18n.Language) (string, error)
}

// Synthesizer is the speech playback capability.
type Synthesizer interface {
	// Speak plays text; any current utterance is cancelled first.
	// Fire-and-forget.
	Speak(text string, lang i18n.Language)

	// Cancel stops the current utterance, if any.
	Cancel()
}

// VoiceRecognizer is the voice capture capability. One session at a time;
// each session delivers exactly one terminal Result.
type VoiceRecognizer interface {
	Start(lang i18n.Language) <-chan speech.Result
	Finish()
	Stop()
}

// DocumentExtractor is the document text-extraction capability.
type DocumentExtractor interface {
	// Validate rejects non-image files without acquiring any extraction
	// resource.
	Validate(path string) error

	Extract(ctx context.Context, path string, lang i18n.Language) (string, error)
}

// Capabilities bundles the resolver and the optional platform capabilities.
// A nil field means the capability is absent; the orchestrator disables the
// matching affordance rather than assume availability.
type Capabilities struct {
	Resolver  QueryResolver
	Synth     Synthesizer
	Voice     VoiceRecognizer
	Extractor DocumentExtractor
}
