package models

// Remote lifecycle states the bulk API reports for an asynchronous job.
const (
	JobStateOpen           = "Open"
	JobStateUploadComplete = "UploadComplete"
	JobStateInProgress     = "InProgress"
	JobStateJobComplete    = "JobComplete"
	JobStateFailed         = "Failed"
	JobStateAborted        = "Aborted"
)

// RemoteStateTerminal reports whether the bulk API state is one the job
// can never leave.
func RemoteStateTerminal(state string) bool {
	switch state {
	case JobStateJobComplete, JobStateFailed, JobStateAborted:
		return true
	default:
		return false
	}
}

// BulkJob is the result payload of a bulk data operation: the job
// identity, its remote lifecycle state, and record-level counts. The
// failed-record list is present only when the CLI was asked to wait and
// the job finished with failures.
type BulkJob struct {
	ID                     string          `json:"id"`
	State                  string          `json:"state"`
	Object                 string          `json:"object,omitempty"`
	Operation              string          `json:"operation,omitempty"`
	NumberRecordsProcessed int             `json:"numberRecordsProcessed"`
	NumberRecordsFailed    int             `json:"numberRecordsFailed"`
	ErrorMessage           string          `json:"errorMessage,omitempty"`
	FailedRecords          []RecordFailure `json:"failedRecords,omitempty"`
}

// Terminal reports whether the job's remote state is terminal.
func (j *BulkJob) Terminal() bool {
	return RemoteStateTerminal(j.State)
}

// HasFailures reports whether any records failed, from either the count
// or the per-record list (the CLI is not consistent about which it sets).
func (j *BulkJob) HasFailures() bool {
	return j.NumberRecordsFailed > 0 || len(j.FailedRecords) > 0
}

// FailedCount returns the number of failed records, preferring the
// job-level counter and falling back to the per-record list.
func (j *BulkJob) FailedCount() int {
	if j.NumberRecordsFailed > 0 {
		return j.NumberRecordsFailed
	}
	return len(j.FailedRecords)
}

// RecordFailure is one failed row from a bulk job's failed-record
// report. Field names follow the bulk API's failed-results columns.
type RecordFailure struct {
	RecordID string `json:"sf__Id,omitempty"`
	Message  string `json:"sf__Error"`
}
