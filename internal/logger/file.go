package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tsmztech/sfkit/internal/models"
	"github.com/tsmztech/sfkit/internal/sfcli"
)

// FileLogger logs run events to files in a log directory.
// It creates timestamped per-run log files, per-call transcript logs,
// and maintains a latest.log symlink pointing to the most recent run.
// It is thread-safe and supports log level filtering to control
// message verbosity. File logging is opt-in: commands only construct a
// FileLogger when a log directory is configured.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	callsDir string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a new FileLogger that writes to .sfkit/logs/.
// It creates the log directory if it doesn't exist, opens a timestamped
// run log file, and creates/updates the latest.log symlink.
// Uses default log level "info".
func NewFileLogger() (*FileLogger, error) {
	// Default log directory is .sfkit/logs/ in current working directory
	logDir := filepath.Join(".sfkit", "logs")
	return NewFileLoggerWithDirAndLevel(logDir, "info")
}

// NewFileLoggerWithDir creates a new FileLogger with a custom log directory.
// This is useful for testing or custom deployments.
// Uses default log level "info".
func NewFileLoggerWithDir(logDir string) (*FileLogger, error) {
	return NewFileLoggerWithDirAndLevel(logDir, "info")
}

// NewFileLoggerWithDirAndLevel creates a new FileLogger with a custom log directory and log level.
// This is useful for testing or custom deployments.
func NewFileLoggerWithDirAndLevel(logDir string, logLevel string) (*FileLogger, error) {
	// Create log directory if it doesn't exist
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Create calls subdirectory for per-invocation transcripts
	callsDir := filepath.Join(logDir, "calls")
	if err := os.MkdirAll(callsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create calls directory: %w", err)
	}

	// Generate timestamped filename: run-YYYYMMDD-HHMMSS.log
	timestamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", timestamp))

	// Open run log file for writing
	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	// Create/update latest.log symlink
	symlinkPath := filepath.Join(logDir, "latest.log")

	// Remove existing symlink if it exists
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}

	// Create new symlink pointing to current run log
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	// Normalize and validate log level
	normalizedLevel := normalizeLogLevel(logLevel)

	logger := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		callsDir: callsDir,
		logLevel: normalizedLevel,
		mu:       sync.Mutex{},
	}

	// Write header to run log
	logger.writeRunLog("=== sfkit Run Log ===\n")
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// shouldLog checks if a message at the given level should be logged.
// Returns true if messageLevel >= configured logLevel.
func (fl *FileLogger) shouldLog(messageLevel string) bool {
	configuredLevel := logLevelToInt(fl.logLevel)
	msgLevel := logLevelToInt(messageLevel)
	return msgLevel >= configuredLevel
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

// logWithLevel is a helper that logs a message at the specified level if filtering allows it.
func (fl *FileLogger) logWithLevel(level string, message string) {
	// Check if this level should be logged
	levelLower := strings.ToLower(level)
	if !fl.shouldLog(levelLower) {
		return
	}

	formatted := fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format("15:04:05"), level, message)
	fl.writeRunLog(formatted)
}

// LogInvocationStart logs the launch of one sf CLI call at DEBUG level.
func (fl *FileLogger) LogInvocationStart(id, bin string, args []string) {
	// Invocation detail is at DEBUG level
	if !fl.shouldLog("debug") {
		return
	}

	command := bin
	if len(args) > 0 {
		command += " " + strings.Join(args, " ")
	}

	message := fmt.Sprintf(
		"[%s] sf call %s: %s\n",
		time.Now().Format("15:04:05"),
		shortID(id),
		command,
	)

	fl.writeRunLog(message)
}

// LogInvocationDone logs the completion of one sf CLI call. Clean and
// non-zero exits log at DEBUG; transport errors log at ERROR.
func (fl *FileLogger) LogInvocationDone(id string, exitCode int, duration time.Duration, err error) {
	if err != nil {
		fl.logWithLevel("ERROR", fmt.Sprintf("sf call %s failed after %s: %v", shortID(id), formatDuration(duration), err))
		return
	}

	// Completed calls are at DEBUG level
	if !fl.shouldLog("debug") {
		return
	}

	message := fmt.Sprintf(
		"[%s] sf call %s finished: exit: %d, took: %s\n",
		time.Now().Format("15:04:05"),
		shortID(id),
		exitCode,
		formatDuration(duration),
	)

	fl.writeRunLog(message)
}

// LogClassification logs an operation's final verdict at INFO level.
func (fl *FileLogger) LogClassification(kind models.OperationKind, c *models.Classification, duration time.Duration) {
	// Verdicts are at INFO level
	if !fl.shouldLog("info") {
		return
	}

	message := fmt.Sprintf(
		"[%s] %s: %s (%s)",
		time.Now().Format("15:04:05"),
		kind,
		c.Category,
		formatDuration(duration),
	)
	if c.Message != "" {
		message += " - " + c.Message
	}
	message += "\n"

	fl.writeRunLog(message)
}

// LogCallTranscript writes the full raw transcript of one invocation to
// a separate file in the calls/ subdirectory. Both captured streams are
// retained verbatim so a failed call can be audited after the fact.
func (fl *FileLogger) LogCallTranscript(out *sfcli.Outcome, bin string, args []string) error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	// Create call log file: calls/call-<id>.log
	callLogPath := filepath.Join(fl.callsDir, fmt.Sprintf("call-%s.log", shortID(out.ID)))

	file, err := os.OpenFile(callLogPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create call log file: %w", err)
	}
	defer file.Close()

	command := bin
	if len(args) > 0 {
		command += " " + strings.Join(args, " ")
	}

	// Write call details
	content := fmt.Sprintf("=== sf call %s ===\n", out.ID)
	content += fmt.Sprintf("Command: %s\n", command)
	content += fmt.Sprintf("Exit code: %d\n", out.ExitCode)
	content += fmt.Sprintf("Duration: %.1fs\n", out.Duration.Seconds())

	if out.Err != nil {
		content += fmt.Sprintf("Transport error: %v\n", out.Err)
	}

	content += "\n"

	if out.Stdout != "" {
		content += fmt.Sprintf("--- stdout ---\n%s\n\n", out.Stdout)
	}

	if out.Stderr != "" {
		content += fmt.Sprintf("--- stderr ---\n%s\n\n", out.Stderr)
	}

	content += fmt.Sprintf("Completed at: %s\n", time.Now().Format(time.RFC3339))

	_, err = file.WriteString(content)
	if err != nil {
		return fmt.Errorf("failed to write call log: %w", err)
	}

	return nil
}

// Close flushes and closes the run log file.
// It should be called when the logger is no longer needed.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		// Flush after each write for real-time logging
		fl.runLog.Sync()
	}
}
