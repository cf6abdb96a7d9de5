package model

import "time"

// StatusTTL is how long a status message stays visible.
const StatusTTL = 3000 * time.Millisecond

// Severity classifies a status message.
type Severity int

// Severity levels.
const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// StatusMessage is the single operator-facing feedback line.
type StatusMessage struct {
	ShownAt      time.Time
	Text         string
	Seq          uint64
	ExpiresAfter time.Duration
	Severity     Severity
}

// ExpiresAt returns the instant the message is hidden.
func (m StatusMessage) ExpiresAt() time.Time {
	return m.ShownAt.Add(m.ExpiresAfter)
}

// Visible reports whether the message is still shown at now.
func (m StatusMessage) Visible(now time.Time) bool {
	return now.Before(m.ExpiresAt())
}
