package models

import "encoding/json"

// Classification is the normalized verdict for one completed
// invocation. Exactly one is produced per invocation, regardless of
// how far execution progressed.
type Classification struct {
	Category Category        `json:"category"`
	Message  string          `json:"message,omitempty"`
	Hint     string          `json:"hint,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`

	// Apex carries compile and runtime detail for code-execution
	// invocations.
	Apex *ApexResult `json:"apex,omitempty"`

	// Job carries batch state and per-record failures for bulk-load
	// invocations.
	Job *BulkJob `json:"job,omitempty"`

	// RawText preserves undecodable tool output so nothing is lost
	// when the envelope cannot be parsed.
	RawText string `json:"rawText,omitempty"`
}

// OK reports whether the classified outcome maps to a zero exit code.
func (c *Classification) OK() bool {
	return c.Category.ExitCode() == 0
}
