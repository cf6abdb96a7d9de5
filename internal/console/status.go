package console

import (
	"time"

	"github.com/Veraticus/costctl/internal/model"
)

// StatusReporter is the single-slot, auto-expiring status channel.
// The last message shown wins; showing a message cancels the pending expiry of the previous one.
type StatusReporter struct {
	now       func() time.Time
	current   *model.StatusMessage
	listeners []func(model.StatusMessage)
	ttl       time.Duration
	seq       uint64
}

// NewStatusReporter creates a reporter using now as its clock.
func NewStatusReporter(now func() time.Time) *StatusReporter {
	if now == nil {
		now = time.Now
	}
	return &StatusReporter{now: now, ttl: model.StatusTTL}
}

// OnShow registers fn to be called with every new message.
func (r *StatusReporter) OnShow(fn func(model.StatusMessage)) {
	r.listeners = append(r.listeners, fn)
}

// Show replaces the current message.
func (r *StatusReporter) Show(severity model.Severity, text string) model.StatusMessage {
	r.seq++
	msg := model.StatusMessage{
		Seq:          r.seq,
		Severity:     severity,
		Text:         text,
		ShownAt:      r.now(),
		ExpiresAfter: r.ttl,
	}
	r.current = &msg

	for _, fn := range r.listeners {
		fn(msg)
	}
	return msg
}

// Info shows an informational message.
func (r *StatusReporter) Info(text string) model.StatusMessage {
	return r.Show(model.SeverityInfo, text)
}

// Success shows a success message.
func (r *StatusReporter) Success(text string) model.StatusMessage {
	return r.Show(model.SeveritySuccess, text)
}

// Error shows an error message.
func (r *StatusReporter) Error(text string) model.StatusMessage {
	return r.Show(model.SeverityError, text)
}

// Current returns the visible message, if any. An expired message is dropped.
func (r *StatusReporter) Current() (model.StatusMessage, bool) {
	if r.current == nil {
		return model.StatusMessage{}, false
	}
	if !r.current.Visible(r.now()) {
		r.current = nil
		return model.StatusMessage{}, false
	}
	return *r.current, true
}

// Expire hides the message with the given sequence number.
// It is a no-op when a newer message has superseded it.
func (r *StatusReporter) Expire(seq uint64) bool {
	if r.current == nil || r.current.Seq != seq {
		return false
	}
	r.current = nil
	return true
}
