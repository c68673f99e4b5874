package model

// AnswerMsg delivers the resolver's answer for a submission. Err is set only
// for transport-level faults; the orchestrator converts those to the fixed
// apology message.
type AnswerMsg struct {
	Answer string
	Err    error
}

// VoiceResultMsg is the single terminal event of a voice capture session.
type VoiceResultMsg struct {
	Transcript string
	Err        error
}

// ExtractionMsg delivers the document extraction outcome.
type ExtractionMsg struct {
	Text string
	Err  error
}

type SessionSavedMsg struct {
	Err error
}

type MarkdownRenderedMsg struct {
	MessageIndex int
	Rendered     string
}
