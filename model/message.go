package model

import "time"

// Message is one conversation turn. Messages are append-only once in the
// transcript; the single exception is the welcome message at index 0, which
// is rewritten in place on a language switch.
type Message struct {
	Text      string
	IsUser    bool
	Rendered  string // Cached terminal markdown rendering
	Timestamp time.Time
}
