// Package bulk submits bulk data loads through the sf CLI and follows
// each job to a terminal verdict. The tracker does not poll on its own:
// it issues a single submit-and-wait invocation per job, delegates the
// polling loop to the tool's native wait flag, and interprets the
// terminal response.
package bulk

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tsmztech/sfkit/internal/classify"
	"github.com/tsmztech/sfkit/internal/models"
	"github.com/tsmztech/sfkit/internal/sfcli"
)

// DefaultWaitMinutes is the wait budget handed to the tool when the
// caller does not choose one.
const DefaultWaitMinutes = 10

// DefaultUpdateExternalID is the identifier field an update falls back
// to when the caller does not name one.
const DefaultUpdateExternalID = "Id"

// safetyMargin keeps the invocation layer's deadline behind the tool's
// internal polling so the tool always gets to report first.
const safetyMargin = 2 * time.Minute

// LoadRequest describes one bulk data load.
type LoadRequest struct {
	// Object is the sObject API name the rows belong to.
	Object string

	// File is the CSV file holding the rows.
	File string

	// Operation is the mutation verb. Empty defaults to insert.
	Operation models.LoadOperation

	// ExternalID is the matching field for upsert and update. Required
	// for upsert; defaults to Id for update; forbidden for insert.
	ExternalID string

	// WaitMinutes is the wait budget passed to the tool's own polling.
	WaitMinutes int

	// Org pins the invocation to one authenticated org alias.
	Org string
}

// Validate applies the per-operation flag rules. It does not mutate the
// request; defaulting happens in Load before validation.
func (r *LoadRequest) Validate() error {
	if strings.TrimSpace(r.Object) == "" {
		return errors.New("an object name is required")
	}
	if strings.TrimSpace(r.File) == "" {
		return errors.New("a CSV file is required")
	}
	switch r.Operation {
	case models.LoadInsert:
		if r.ExternalID != "" {
			return errors.New("insert does not take an external-id field")
		}
	case models.LoadUpsert:
		if r.ExternalID == "" {
			return errors.New("upsert requires an external-id field")
		}
	case models.LoadUpdate:
	default:
		return fmt.Errorf("invalid operation %q: must be insert, upsert, or update", r.Operation)
	}
	return nil
}

// Result is everything one tracker call produced. Job and Outcome are
// nil when validation rejected the request before any process spawned.
type Result struct {
	Classification *models.Classification
	Job            *Descriptor
	Outcome        *sfcli.Outcome
}

// Tracker submits bulk jobs and interprets their terminal responses. It
// is reusable across calls.
type Tracker struct {
	Invoker *sfcli.Invoker
}

// NewTracker creates a Tracker backed by the given invoker.
func NewTracker(inv *sfcli.Invoker) *Tracker {
	return &Tracker{Invoker: inv}
}

// Load validates the request, submits the job with the tool's wait flag
// set, and folds the terminal response into a descriptor. Flag-rule
// violations are rejected before any process is spawned.
func (t *Tracker) Load(ctx context.Context, req LoadRequest) *Result {
	if req.Operation == "" {
		req.Operation = models.LoadInsert
	}
	if req.Operation == models.LoadUpdate && req.ExternalID == "" {
		req.ExternalID = DefaultUpdateExternalID
	}
	if req.WaitMinutes <= 0 {
		req.WaitMinutes = DefaultWaitMinutes
	}
	if err := req.Validate(); err != nil {
		return &Result{Classification: &models.Classification{
			Category: models.CategoryValidationFailure,
			Message:  err.Error(),
		}}
	}

	d := NewDescriptor(req.Object, req.Operation)
	d.StartPolling()

	out := t.Invoker.Execute(ctx, sfcli.Invocation{
		Args:    loadArgs(req),
		Org:     req.Org,
		Timeout: waitBudget(req.WaitMinutes),
	})
	c := classify.Classify(out, models.KindBulkLoad)
	_ = d.Observe(c, out.TimedOut())
	return &Result{Classification: c, Job: d, Outcome: out}
}

// Status checks a job out of band, without waiting on it. This is the
// remediation path a timed-out load points at.
func (t *Tracker) Status(ctx context.Context, jobID, org string) *Result {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return &Result{Classification: &models.Classification{
			Category: models.CategoryValidationFailure,
			Message:  "a job id is required",
		}}
	}

	d := NewDescriptor("", "")
	d.ID = jobID
	d.StartPolling()

	out := t.Invoker.Execute(ctx, sfcli.Invocation{
		Args: []string{"data", "bulk", "status", "--job-id", jobID, "--json"},
		Org:  org,
	})
	c := classify.Classify(out, models.KindBulkLoad)
	_ = d.ObserveProbe(c)

	// On an out-of-band check a live job is a normal answer, not a
	// wait-budget overrun: downgrade the classifier's verdict to a
	// progress report.
	if c.Job != nil && !c.Job.Terminal() && c.Category == models.CategoryRuntimeFailure {
		c = &models.Classification{
			Category: models.CategorySuccess,
			Message:  d.Message,
			Job:      c.Job,
			Payload:  c.Payload,
		}
	}
	return &Result{Classification: c, Job: d, Outcome: out}
}

func loadArgs(req LoadRequest) []string {
	args := []string{
		"data", string(req.Operation), "bulk",
		"--file", req.File,
		"--sobject", req.Object,
		"--wait", strconv.Itoa(req.WaitMinutes),
	}
	if req.ExternalID != "" {
		args = append(args, "--external-id", req.ExternalID)
	}
	return append(args, "--json")
}

// waitBudget converts the caller's wait minutes into the invocation
// deadline. The margin covers the tool's own submit and teardown time
// around its polling window.
func waitBudget(minutes int) time.Duration {
	return time.Duration(minutes)*time.Minute + safetyMargin
}
