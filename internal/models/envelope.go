package models

import "encoding/json"

// Envelope is the outer JSON wrapper the sf CLI emits on both streams.
// The real payload sits one level deep under "result"; on failures the
// CLI sets a non-zero status and usually adds name/message at the top
// level instead of (or alongside) a result.
type Envelope struct {
	Status   int             `json:"status"`
	Result   json.RawMessage `json:"result,omitempty"`
	Message  string          `json:"message,omitempty"`
	Name     string          `json:"name,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Failed reports whether the envelope signals a domain-level failure.
// A non-zero status with a decodable envelope is still a domain result,
// never a transport problem.
func (e *Envelope) Failed() bool {
	return e.Status != 0
}

// RawResult is the outcome of probing a stream for structured data:
// either a decoded envelope or the stream's trimmed text, never both.
type RawResult struct {
	Envelope *Envelope
	Text     string
}

// Decoded reports whether the stream parsed as an envelope.
func (r RawResult) Decoded() bool {
	return r.Envelope != nil
}
