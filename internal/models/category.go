package models

import "encoding/json"

// Category classifies the outcome of one sf CLI invocation by how far
// execution progressed before it stopped producing useful work.
// Categories are mutually exclusive; a higher value means the operation
// got further.
type Category int

const (
	// CategoryValidationFailure means caller input was rejected before any
	// invocation was attempted.
	CategoryValidationFailure Category = iota
	// CategoryTransportFailure means the CLI could not be reached, timed
	// out, or returned output no decoder understood.
	CategoryTransportFailure
	// CategoryCompileFailure means the CLI ran but the submitted source
	// failed to compile.
	CategoryCompileFailure
	// CategoryRuntimeFailure means compilation succeeded and execution
	// raised an exception.
	CategoryRuntimeFailure
	// CategoryPartialBatchFailure means a batch job reached a terminal
	// state but some records failed.
	CategoryPartialBatchFailure
	// CategorySuccess means the operation completed with no failures.
	CategorySuccess
)

// String returns the string representation of Category.
func (c Category) String() string {
	switch c {
	case CategoryValidationFailure:
		return "validation failure"
	case CategoryTransportFailure:
		return "transport failure"
	case CategoryCompileFailure:
		return "compile failure"
	case CategoryRuntimeFailure:
		return "runtime failure"
	case CategoryPartialBatchFailure:
		return "partial batch failure"
	case CategorySuccess:
		return "success"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the category as its display name; the bare
// ordinal means nothing to consumers.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// ExitCode maps a category to the process exit code the CLI surface
// reports: 0 for success and for partial batch failures (which exit
// cleanly after printing their per-record report), 1 for everything else.
func (c Category) ExitCode() int {
	switch c {
	case CategorySuccess, CategoryPartialBatchFailure:
		return 0
	default:
		return 1
	}
}
