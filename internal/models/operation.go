package models

import "fmt"

// OperationKind selects which classification rules apply to an
// invocation's output.
type OperationKind int

const (
	// KindProbe is a diagnostic invocation with no operation payload,
	// such as a version or org check. Only the envelope status matters.
	KindProbe OperationKind = iota
	// KindApexRun is a single code-execution operation (compile flags,
	// exception detail, debug log text).
	KindApexRun
	// KindBulkLoad is an asynchronous batch operation (job state and
	// per-record failures).
	KindBulkLoad
)

// String returns the string representation of OperationKind.
func (k OperationKind) String() string {
	switch k {
	case KindProbe:
		return "probe"
	case KindApexRun:
		return "apex-run"
	case KindBulkLoad:
		return "bulk-load"
	default:
		return "unknown"
	}
}

// LoadOperation is the mutation verb of a bulk data load.
type LoadOperation string

const (
	LoadInsert LoadOperation = "insert"
	LoadUpsert LoadOperation = "upsert"
	LoadUpdate LoadOperation = "update"
)

// ParseLoadOperation validates and normalizes an operation name from
// the CLI surface. Empty input defaults to insert.
func ParseLoadOperation(s string) (LoadOperation, error) {
	switch LoadOperation(s) {
	case "":
		return LoadInsert, nil
	case LoadInsert, LoadUpsert, LoadUpdate:
		return LoadOperation(s), nil
	default:
		return "", fmt.Errorf("invalid operation %q: must be insert, upsert, or update", s)
	}
}
