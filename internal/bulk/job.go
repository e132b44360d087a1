package bulk

import (
	"errors"
	"fmt"
	"time"

	"github.com/tsmztech/sfkit/internal/models"
)

// State is the local lifecycle of a tracked bulk job. It is distinct
// from the remote state the bulk API reports: TimedOut is a purely
// local verdict meaning the wait ran out while the remote job kept
// going.
type State string

const (
	StateSubmitted State = "submitted"
	StatePolling   State = "polling"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
	StateTimedOut  State = "timed_out"
)

// Terminal reports whether the state is one the descriptor never
// leaves.
func (s State) Terminal() bool {
	switch s {
	case StateCompleted, StateFailed, StateTimedOut:
		return true
	default:
		return false
	}
}

// ErrJobFinal is returned when a mutation reaches a descriptor that has
// already settled into a terminal state.
var ErrJobFinal = errors.New("job is already in a terminal state")

// Descriptor tracks one bulk job from submission to a terminal verdict.
// It is created on submission and mutated only by observed responses;
// once terminal it rejects further mutation.
type Descriptor struct {
	ID          string
	Object      string
	Operation   models.LoadOperation
	State       State
	RemoteState string
	Processed   int
	Failed      int
	Failures    []models.RecordFailure
	Message     string
	SubmittedAt time.Time
	FinishedAt  *time.Time
}

// NewDescriptor creates a descriptor for a job about to be submitted.
func NewDescriptor(object string, op models.LoadOperation) *Descriptor {
	return &Descriptor{
		Object:      object,
		Operation:   op,
		State:       StateSubmitted,
		SubmittedAt: time.Now(),
	}
}

// StartPolling marks the submit-and-wait invocation as in flight. It
// has no effect once the descriptor has left the submitted state.
func (d *Descriptor) StartPolling() {
	if d.State == StateSubmitted {
		d.State = StatePolling
	}
}

// Observe folds one classified submit-and-wait response into the
// descriptor and settles its state. timedOut reports that the
// invocation layer's own deadline fired, which outranks whatever the
// response says: the remote job may still be running.
func (d *Descriptor) Observe(c *models.Classification, timedOut bool) error {
	if d.State.Terminal() {
		return fmt.Errorf("%w: %s", ErrJobFinal, d.State)
	}
	if c.Job != nil {
		d.absorb(c.Job)
	}

	switch {
	case timedOut:
		d.finish(StateTimedOut)
		d.Message = d.stillRunningMessage()
	case c.Category == models.CategorySuccess:
		d.finish(StateCompleted)
	case c.Category == models.CategoryPartialBatchFailure:
		d.finish(StateCompleted)
		d.Message = c.Message
	case c.Job != nil && !c.Job.Terminal():
		// The tool's own wait expired with the job still going.
		d.finish(StateTimedOut)
		d.Message = d.stillRunningMessage()
	default:
		d.finish(StateFailed)
		d.Message = c.Message
	}
	return nil
}

// ObserveProbe folds an out-of-band status check into the descriptor.
// A live remote job leaves the descriptor polling rather than timed
// out: no wait budget was in force.
func (d *Descriptor) ObserveProbe(c *models.Classification) error {
	if d.State.Terminal() {
		return fmt.Errorf("%w: %s", ErrJobFinal, d.State)
	}
	if c.Job != nil {
		d.absorb(c.Job)
	}

	switch {
	case c.Category == models.CategorySuccess:
		d.finish(StateCompleted)
	case c.Category == models.CategoryPartialBatchFailure:
		d.finish(StateCompleted)
		d.Message = c.Message
	case c.Job != nil && !c.Job.Terminal():
		d.State = StatePolling
		d.Message = fmt.Sprintf("bulk job %s is %s; %d records processed so far", d.ID, d.RemoteState, d.Processed)
	default:
		d.finish(StateFailed)
		d.Message = c.Message
	}
	return nil
}

func (d *Descriptor) absorb(job *models.BulkJob) {
	if job.ID != "" {
		d.ID = job.ID
	}
	if d.Object == "" {
		d.Object = job.Object
	}
	if d.Operation == "" {
		d.Operation = models.LoadOperation(job.Operation)
	}
	d.RemoteState = job.State
	d.Processed = job.NumberRecordsProcessed
	d.Failed = job.FailedCount()
	if len(job.FailedRecords) > 0 {
		d.Failures = job.FailedRecords
	}
}

func (d *Descriptor) finish(s State) {
	d.State = s
	now := time.Now()
	d.FinishedAt = &now
}

func (d *Descriptor) stillRunningMessage() string {
	if d.ID != "" {
		return fmt.Sprintf("bulk job %s may still be running in the org; check it with: sfkit data status --job-id %s", d.ID, d.ID)
	}
	return "the job may still be running in the org even though the invocation timed out; check its status before retrying"
}
