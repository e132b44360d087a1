// Package sfcli executes Salesforce CLI invocations and captures their
// raw outcome for classification.
package sfcli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"
)

// DefaultBin is the sf executable resolved from PATH.
const DefaultBin = "sf"

// DefaultMaxCapture bounds each captured stream at 50 MiB. Bulk result
// dumps and Apex debug logs fit comfortably below this; anything larger
// is reported as a transport problem.
const DefaultMaxCapture int64 = 50 << 20

// InvocationLogger receives lifecycle notifications for external tool
// calls. Can be nil for silent operation.
type InvocationLogger interface {
	LogInvocationStart(id, bin string, args []string)
	LogInvocationDone(id string, exitCode int, duration time.Duration, err error)
}

// Invocation is one immutable request to run the external tool. Create
// a new Invocation per operation; it is consumed exactly once.
type Invocation struct {
	// Args is the sf subcommand and its flags, without the binary name.
	Args []string

	// Org, when set, appends --target-org so the call is pinned to one
	// authenticated org instead of the environment's default.
	Org string

	// Timeout bounds the whole call. Zero means no timeout.
	Timeout time.Duration

	// Payload, when non-nil, is staged into a scratch file before
	// execution and the file path appended behind PayloadFlag. The file
	// is removed on every exit path.
	Payload []byte

	// PayloadFlag names the flag that carries the scratch file path.
	// Defaults to --file.
	PayloadFlag string

	// PayloadExt is the scratch file extension, e.g. ".apex".
	PayloadExt string
}

// Outcome is the raw result of one invocation: exit status and both
// streams, before any classification.
type Outcome struct {
	ID       string
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration

	// Err is set only for transport-level problems: the binary could
	// not be started, the timeout fired, or a stream overflowed the
	// capture limit. Domain failures arrive as exit codes, not here.
	Err error

	// PayloadPath records where the scratch file was staged. The file
	// is already gone by the time the caller sees this.
	PayloadPath string
}

// TimedOut reports whether the invocation was abandoned at its timeout.
func (o *Outcome) TimedOut() bool {
	return IsTimeout(o.Err)
}

// Invoker runs sf CLI invocations. It follows the http.Client pattern:
// create once, use many times.
type Invoker struct {
	// BinPath is the sf executable. Defaults to DefaultBin.
	BinPath string

	// BaseArgs are inserted before every invocation's own arguments.
	// Populated from the configured cli override, e.g. "sf --dev-debug".
	BaseArgs []string

	// Runner executes the process. Defaults to DefaultRunner().
	Runner ProcessRunner

	// ScratchDir receives staged payload files. Defaults to
	// DefaultScratchDir().
	ScratchDir string

	// MaxCapture bounds each captured stream in bytes. Defaults to
	// DefaultMaxCapture.
	MaxCapture int64

	// Logger receives invocation lifecycle events. Can be nil.
	Logger InvocationLogger
}

// NewInvoker creates a new Invoker with default settings.
func NewInvoker() *Invoker {
	return &Invoker{
		BinPath: DefaultBin,
		Runner:  DefaultRunner(),
	}
}

// Execute runs the invocation to completion and always returns an
// Outcome: transport problems are reported inside it rather than as a
// separate error, so the classifier sees every failure shape through
// one value.
func (inv *Invoker) Execute(ctx context.Context, call Invocation) *Outcome {
	out := &Outcome{ID: uuid.New().String()}

	bin := inv.BinPath
	if bin == "" {
		bin = DefaultBin
	}

	args := make([]string, 0, len(inv.BaseArgs)+len(call.Args)+4)
	args = append(args, inv.BaseArgs...)
	args = append(args, call.Args...)
	if call.Org != "" {
		args = append(args, "--target-org", call.Org)
	}

	if call.Payload != nil {
		path, err := inv.stagePayload(call)
		if err != nil {
			out.Err = fmt.Errorf("staging payload: %w", err)
			return out
		}
		out.PayloadPath = path
		defer func() {
			// Cleanup failures must never mask the invocation result.
			_ = os.Remove(path)
		}()

		flag := call.PayloadFlag
		if flag == "" {
			flag = "--file"
		}
		args = append(args, flag, path)
	}

	runCtx := ctx
	if call.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, call.Timeout)
		defer cancel()
	}

	runner := inv.Runner
	if runner == nil {
		runner = DefaultRunner()
	}

	limit := inv.MaxCapture
	if limit <= 0 {
		limit = DefaultMaxCapture
	}
	stdout := &limitWriter{max: limit}
	stderr := &limitWriter{max: limit}

	if inv.Logger != nil {
		inv.Logger.LogInvocationStart(out.ID, bin, args)
	}

	start := time.Now()
	err := runner.Run(runCtx, bin, args, stdout, stderr)
	out.Duration = time.Since(start)
	out.Stdout = stdout.String()
	out.Stderr = stderr.String()

	if err != nil {
		exitErr, isExit := err.(*exec.ExitError)
		switch {
		case runCtx.Err() == context.DeadlineExceeded:
			out.ExitCode = -1
			out.Err = &TimeoutError{Budget: call.Timeout}
		case isExit:
			out.ExitCode = exitErr.ExitCode()
		default:
			out.ExitCode = -1
			out.Err = err
		}
	}

	if out.Err == nil {
		switch {
		case stdout.Overflowed():
			out.Err = &OverflowError{Stream: "stdout", Limit: limit}
		case stderr.Overflowed():
			out.Err = &OverflowError{Stream: "stderr", Limit: limit}
		}
	}

	if inv.Logger != nil {
		inv.Logger.LogInvocationDone(out.ID, out.ExitCode, out.Duration, out.Err)
	}

	return out
}

// limitWriter keeps at most max bytes and counts the rest, so a
// runaway stream cannot exhaust memory while the child keeps writing.
// It never returns a write error; reporting overflow happens after the
// process exits, which keeps the child from blocking on a full pipe.
type limitWriter struct {
	buf   bytes.Buffer
	max   int64
	total int64
}

func (w *limitWriter) Write(p []byte) (int, error) {
	n := len(p)
	w.total += int64(n)
	if room := w.max - int64(w.buf.Len()); room > 0 {
		if int64(n) > room {
			p = p[:room]
		}
		w.buf.Write(p)
	}
	return n, nil
}

func (w *limitWriter) Overflowed() bool {
	return w.total > w.max
}

func (w *limitWriter) String() string {
	return w.buf.String()
}
