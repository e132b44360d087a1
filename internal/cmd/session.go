package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsmztech/sfkit/internal/config"
	"github.com/tsmztech/sfkit/internal/display"
	"github.com/tsmztech/sfkit/internal/logger"
	"github.com/tsmztech/sfkit/internal/models"
	"github.com/tsmztech/sfkit/internal/sfcli"
)

// newRunner builds the process runner handed to the invoker. Tests
// swap it out so command runs never spawn a real sf process.
var newRunner = sfcli.DefaultRunner

// session bundles what every org-facing command needs: the merged
// configuration, the loggers, and a wired invoker.
type session struct {
	cfg     *config.Config
	console *logger.ConsoleLogger
	fileLog *logger.FileLogger
	log     *multiLogger
	call    *callRecorder
	invoker *sfcli.Invoker
}

// newSession loads configuration, builds the loggers, and wires the
// invoker. Console diagnostics go to the command's error stream so
// stdout stays reserved for operation output.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		console: logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel),
		call:    &callRecorder{},
	}

	loggers := []runLogger{s.console, s.call}
	if cfg.LogDir != "" {
		fileLog, err := logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to create file logger: %w", err)
		}
		s.fileLog = fileLog
		loggers = append(loggers, fileLog)
	}
	s.log = &multiLogger{loggers: loggers}

	inv := sfcli.NewInvoker()
	bin, baseArgs, err := cfg.SplitCLI()
	if err != nil {
		return nil, err
	}
	if bin != "" {
		inv.BinPath = bin
		inv.BaseArgs = baseArgs
	}
	if cfg.ScratchDir != "" {
		inv.ScratchDir = cfg.ScratchDir
	}
	inv.Runner = newRunner()
	inv.Logger = s.log
	s.invoker = inv

	// Orphaned payload files only exist after a crash; sweep them
	// opportunistically on each run.
	scratch := inv.ScratchDir
	if scratch == "" {
		scratch = sfcli.DefaultScratchDir()
	}
	if removed, err := sfcli.SweepScratch(scratch, sfcli.ScratchMaxAge); err == nil && removed > 0 {
		s.console.LogDebug(fmt.Sprintf("swept %d stale payload file(s) from %s", removed, scratch))
	}

	return s, nil
}

// Close releases the session's file logger, if one was opened.
func (s *session) Close() {
	if s.fileLog != nil {
		_ = s.fileLog.Close()
	}
}

// loadMergedConfig loads .sfkit/config.yaml (or the --config override),
// merges changed CLI flags over it, and validates the result. Flags the
// calling command does not declare are simply never marked changed.
func loadMergedConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	// Build flag pointers for merge (only values the caller set)
	var orgPtr *string
	if cmd.Flags().Changed("target-org") {
		org, _ := cmd.Flags().GetString("target-org")
		orgPtr = &org
	}

	var timeoutPtr *time.Duration
	if cmd.Flags().Changed("timeout") {
		timeoutStr, _ := cmd.Flags().GetString("timeout")
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", timeoutStr, err)
		}
		timeoutPtr = &timeout
	}

	var waitPtr *int
	if cmd.Flags().Changed("wait") {
		wait, _ := cmd.Flags().GetInt("wait")
		waitPtr = &wait
	}

	// Verbose flag overrides the configured log level
	var logLevelPtr *string
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logLevel := "debug"
		logLevelPtr = &logLevel
	}

	var logDirPtr *string
	if cmd.Flags().Changed("log-dir") {
		logDir, _ := cmd.Flags().GetString("log-dir")
		logDirPtr = &logDir
	}

	cfg.MergeWithFlags(orgPtr, timeoutPtr, waitPtr, logLevelPtr, logDirPtr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// finish reports the classified result and maps it to the process exit
// code: OK categories return nil, everything else surfaces the category
// as the command error. out is nil when validation stopped the
// operation before any invocation.
func finish(cmd *cobra.Command, s *session, kind models.OperationKind, c *models.Classification, out *sfcli.Outcome, jsonOut bool) error {
	var duration time.Duration
	if out != nil {
		duration = out.Duration
	}
	s.log.LogClassification(kind, c, duration)

	if s.fileLog != nil && out != nil {
		if err := s.fileLog.LogCallTranscript(out, s.call.bin, s.call.args); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to write call transcript: %v\n", err)
		}
	}

	if jsonOut {
		if err := writeJSON(cmd.OutOrStdout(), c); err != nil {
			return err
		}
	} else {
		display.RenderClassification(cmd.OutOrStdout(), c)
	}

	if c.OK() {
		return nil
	}
	return fmt.Errorf("%s", c.Category)
}

// writeJSON emits the machine-readable result as one JSON document:
// the decoded envelope payload verbatim when the invocation produced
// one, the classification itself otherwise.
func writeJSON(w io.Writer, c *models.Classification) error {
	if len(c.Payload) > 0 {
		_, err := fmt.Fprintf(w, "%s\n", c.Payload)
		return err
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// runLogger is the event surface shared by the console and file
// loggers: invocation lifecycle plus the classified verdict.
type runLogger interface {
	sfcli.InvocationLogger
	LogClassification(kind models.OperationKind, c *models.Classification, duration time.Duration)
}

// multiLogger forwards events to every configured logger.
type multiLogger struct {
	loggers []runLogger
}

// LogInvocationStart forwards to all loggers
func (ml *multiLogger) LogInvocationStart(id, bin string, args []string) {
	for _, l := range ml.loggers {
		l.LogInvocationStart(id, bin, args)
	}
}

// LogInvocationDone forwards to all loggers
func (ml *multiLogger) LogInvocationDone(id string, exitCode int, duration time.Duration, err error) {
	for _, l := range ml.loggers {
		l.LogInvocationDone(id, exitCode, duration, err)
	}
}

// LogClassification forwards to all loggers
func (ml *multiLogger) LogClassification(kind models.OperationKind, c *models.Classification, duration time.Duration) {
	for _, l := range ml.loggers {
		l.LogClassification(kind, c, duration)
	}
}

// callRecorder remembers the most recent invocation's resolved argv so
// the call transcript can be written once the outcome is known.
type callRecorder struct {
	bin  string
	args []string
}

// LogInvocationStart captures the resolved binary and arguments
func (r *callRecorder) LogInvocationStart(id, bin string, args []string) {
	r.bin = bin
	r.args = append([]string(nil), args...)
}

// LogInvocationDone is a no-op; the outcome arrives via the caller
func (r *callRecorder) LogInvocationDone(id string, exitCode int, duration time.Duration, err error) {
}

// LogClassification is a no-op
func (r *callRecorder) LogClassification(kind models.OperationKind, c *models.Classification, duration time.Duration) {
}
