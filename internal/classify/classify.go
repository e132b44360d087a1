// Package classify turns a raw sf invocation outcome into a result
// category and a normalized payload. Classification is total: every
// outcome maps to exactly one category, and the decision tree always
// prefers the most specific evidence available. Output that decodes as
// the CLI's JSON envelope is classified from the envelope's content;
// only outcomes with nothing structurally usable fall through to
// TransportFailure.
package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tsmztech/sfkit/internal/models"
	"github.com/tsmztech/sfkit/internal/sfcli"
)

// GenericTransportMessage is reported when the invocation failed and
// neither stream yields anything usable as a diagnostic.
const GenericTransportMessage = "sf CLI invocation failed"

// Remediation hints attached to transport failures. The hint names the
// most likely fix for how the invocation broke, not a certain cause.
const (
	HintInstall = "check that the Salesforce CLI is installed and on PATH (npm install --global @salesforce/cli)"
	HintAuth    = "check that the Salesforce CLI is installed and the org is authenticated (sf org login web)"
	HintTimeout = "the operation may still be running in the org; check its status before retrying"
)

// Classify maps one finished invocation to a result category and the
// payload that backs it. The operation kind selects which payload shape
// the envelope's result field is probed for.
func Classify(out *sfcli.Outcome, kind models.OperationKind) *models.Classification {
	if out.Err != nil {
		return transportFromErr(out)
	}

	// Decode order: stdout first, then stderr. Older CLI releases wrote
	// the error envelope to stderr, so a decodable stderr still gets
	// envelope treatment rather than raw-text treatment.
	if raw := DecodeStream(out.Stdout); raw.Decoded() {
		return classifyEnvelope(raw.Envelope, kind, true)
	}
	if raw := DecodeStream(out.Stderr); raw.Decoded() {
		return classifyEnvelope(raw.Envelope, kind, false)
	}

	c := &models.Classification{
		Category: models.CategoryTransportFailure,
		Message:  GenericTransportMessage,
		Hint:     HintAuth,
	}
	if text := strings.TrimSpace(out.Stderr); text != "" {
		c.Message = text
		c.RawText = text
	}
	return c
}

// DecodeStream probes one captured stream for the CLI's JSON envelope.
// Anything that is not a JSON object is returned as trimmed raw text.
func DecodeStream(text string) models.RawResult {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return models.RawResult{Text: trimmed}
	}
	var env models.Envelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return models.RawResult{Text: trimmed}
	}
	return models.RawResult{Envelope: &env}
}

// transportFromErr classifies an invocation that never produced a usable
// result: spawn failure, timeout, or capture overflow.
func transportFromErr(out *sfcli.Outcome) *models.Classification {
	c := &models.Classification{
		Category: models.CategoryTransportFailure,
		Message:  out.Err.Error(),
		RawText:  strings.TrimSpace(out.Stderr),
	}
	switch {
	case sfcli.IsTimeout(out.Err):
		c.Hint = HintTimeout
	case errors.Is(out.Err, exec.ErrNotFound):
		c.Hint = HintInstall
	default:
		c.Hint = HintAuth
	}
	return c
}

func classifyEnvelope(env *models.Envelope, kind models.OperationKind, fromStdout bool) *models.Classification {
	switch kind {
	case models.KindApexRun:
		return classifyApex(env, fromStdout)
	case models.KindBulkLoad:
		return classifyBulk(env, fromStdout)
	default:
		return classifyProbe(env, fromStdout)
	}
}

// classifyApex applies the anonymous-Apex rules. The compiled and
// success flags are authoritative when present; when both are absent the
// envelope's own status decides, because legacy success payloads omit
// the flags while error envelopes omit the whole result.
func classifyApex(env *models.Envelope, fromStdout bool) *models.Classification {
	var res models.ApexResult
	hasPayload := false
	if len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, &res); err == nil {
			hasPayload = true
		}
	}

	if hasPayload && !res.CompiledOK() {
		msg := res.CompileProblem
		if msg == "" {
			msg = "Apex did not compile"
		}
		return &models.Classification{
			Category: models.CategoryCompileFailure,
			Message:  msg,
			Apex:     &res,
			Payload:  env.Result,
		}
	}

	if hasPayload && !res.Succeeded() {
		msg := res.ExceptionMessage
		if msg == "" {
			msg = "Apex execution failed"
		}
		return &models.Classification{
			Category: models.CategoryRuntimeFailure,
			Message:  msg,
			Apex:     &res,
			Payload:  env.Result,
		}
	}

	if env.Failed() {
		return envelopeFailure(env, fromStdout)
	}

	c := &models.Classification{
		Category: models.CategorySuccess,
		Payload:  env.Result,
	}
	if hasPayload {
		c.Apex = &res
	}
	return c
}

// classifyBulk applies the bulk-load rules. A wholesale job failure
// outranks record-level failures; record-level failures outrank the
// job's terminal success state.
func classifyBulk(env *models.Envelope, fromStdout bool) *models.Classification {
	var job models.BulkJob
	hasJob := false
	if len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, &job); err == nil && (job.ID != "" || job.State != "") {
			hasJob = true
		}
	}
	if !hasJob {
		if env.Failed() {
			return envelopeFailure(env, fromStdout)
		}
		return &models.Classification{Category: models.CategorySuccess, Payload: env.Result}
	}

	switch {
	case job.State == models.JobStateFailed || job.State == models.JobStateAborted:
		msg := job.ErrorMessage
		if msg == "" {
			msg = fmt.Sprintf("bulk job %s ended in state %s", job.ID, job.State)
		}
		return &models.Classification{
			Category: models.CategoryRuntimeFailure,
			Message:  msg,
			Job:      &job,
			Payload:  env.Result,
		}
	case !job.Terminal():
		return &models.Classification{
			Category: models.CategoryRuntimeFailure,
			Message:  fmt.Sprintf("bulk job %s is still %s after the wait budget", job.ID, job.State),
			Hint:     fmt.Sprintf("sfkit data status --job-id %s", job.ID),
			Job:      &job,
			Payload:  env.Result,
		}
	case job.HasFailures():
		return &models.Classification{
			Category: models.CategoryPartialBatchFailure,
			Message:  fmt.Sprintf("%d of %d records failed", job.FailedCount(), job.NumberRecordsProcessed),
			Job:      &job,
			Payload:  env.Result,
		}
	default:
		return &models.Classification{
			Category: models.CategorySuccess,
			Job:      &job,
			Payload:  env.Result,
		}
	}
}

// classifyProbe handles invocations with no operation-specific payload
// shape, such as org display or version probes.
func classifyProbe(env *models.Envelope, fromStdout bool) *models.Classification {
	if env.Failed() {
		return envelopeFailure(env, fromStdout)
	}
	return &models.Classification{Category: models.CategorySuccess, Payload: env.Result}
}

// envelopeFailure classifies a failed envelope that carries no
// recognizable operation payload, only the CLI's own error name and
// message. On stdout that is a runtime failure: the tool accepted the
// request and reported a structured error, so the transport did its
// job. On stderr it is a transport failure, which is where the CLI
// reports auth and environment problems.
func envelopeFailure(env *models.Envelope, fromStdout bool) *models.Classification {
	c := &models.Classification{Message: envelopeMessage(env)}
	if fromStdout {
		c.Category = models.CategoryRuntimeFailure
	} else {
		c.Category = models.CategoryTransportFailure
		c.Hint = HintAuth
	}
	return c
}

func envelopeMessage(env *models.Envelope) string {
	switch {
	case env.Name != "" && env.Message != "":
		return env.Name + ": " + env.Message
	case env.Message != "":
		return env.Message
	case env.Name != "":
		return env.Name
	default:
		return "sf reported a failure without a message"
	}
}
