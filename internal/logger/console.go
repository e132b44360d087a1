// Package logger provides logging implementations for sfkit runs.
//
// The logger package offers structured logging of sf CLI invocations and
// result classifications. Implementations are thread-safe and support
// various output destinations (console, file, etc.). Console diagnostics
// go to stderr so stdout stays reserved for operation payloads.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/tsmztech/sfkit/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs run progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps for tracking execution flow.
// It supports log level filtering to control message verbosity.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// logLevel determines the minimum log level for messages to be output.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
// Color output is automatically enabled when writing to os.Stdout or os.Stderr with TTY support.
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	// Normalize and validate log level
	normalizedLevel := normalizeLogLevel(logLevel)

	// Detect if we should use color output
	useColor := isTerminal(writer)

	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizedLevel,
		mutex:       sync.Mutex{},
		colorOutput: useColor,
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// Returns true for os.Stdout and os.Stderr when they are TTYs.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}

	// Check if writer is os.Stdout or os.Stderr
	if w == os.Stdout || w == os.Stderr {
		// Use color library's built-in TTY detection
		// This will return false if NO_COLOR env var is set
		return !color.NoColor
	}

	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if validLevels[normalized] {
		return normalized
	}

	return "info" // Default level
}

// shouldLog checks if a message at the given level should be logged.
// Returns true if messageLevel >= configured logLevel.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	configuredLevel := logLevelToInt(cl.logLevel)
	msgLevel := logLevelToInt(messageLevel)
	return msgLevel >= configuredLevel
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo // Default to info if unknown
	}
}

// LogTrace logs a trace-level message (most verbose).
// Format: "[HH:MM:SS] [TRACE] <message>"
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
// Format: "[HH:MM:SS] [DEBUG] <message>"
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
// Format: "[HH:MM:SS] [INFO] <message>"
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
// Format: "[HH:MM:SS] [WARN] <message>"
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
// Format: "[HH:MM:SS] [ERROR] <message>"
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel is a helper that logs a message at the specified level if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}

	// Check if this level should be logged
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string

	if cl.colorOutput {
		// Format with colors
		formatted = cl.formatWithColor(ts, level, message)
	} else {
		// Plain text format
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// formatWithColor formats a log message with ANSI color codes.
func (cl *ConsoleLogger) formatWithColor(ts, level, message string) string {
	var coloredLevel string

	switch strings.ToUpper(level) {
	case "TRACE":
		coloredLevel = color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		coloredLevel = color.New(color.FgCyan).Sprint(level)
	case "INFO":
		coloredLevel = color.New(color.FgBlue).Sprint(level)
	case "WARN":
		coloredLevel = color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		coloredLevel = color.New(color.FgRed).Sprint(level)
	default:
		coloredLevel = level
	}

	return fmt.Sprintf("[%s] [%s] %s\n", ts, coloredLevel, message)
}

// LogInvocationStart logs the launch of one sf CLI call at DEBUG level.
// Format: "[HH:MM:SS] sf call <id>: <bin> <args...>"
// Implements the invocation logger the Invoker notifies.
func (cl *ConsoleLogger) LogInvocationStart(id, bin string, args []string) {
	if cl.writer == nil {
		return
	}

	// Invocation detail is at DEBUG level
	if !cl.shouldLog("debug") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	command := bin
	if len(args) > 0 {
		command += " " + strings.Join(args, " ")
	}

	var message string
	if cl.colorOutput {
		callID := color.New(color.FgCyan).Sprint(shortID(id))
		message = fmt.Sprintf("[%s] sf call %s: %s\n", ts, callID, command)
	} else {
		message = fmt.Sprintf("[%s] sf call %s: %s\n", ts, shortID(id), command)
	}

	cl.writer.Write([]byte(message))
}

// LogInvocationDone logs the completion of one sf CLI call. Clean and
// non-zero exits log at DEBUG; transport errors log at ERROR.
// Format: "[HH:MM:SS] sf call <id> finished: exit: 0, took: 2s"
func (cl *ConsoleLogger) LogInvocationDone(id string, exitCode int, duration time.Duration, err error) {
	if cl.writer == nil {
		return
	}

	if err != nil {
		cl.logWithLevel("ERROR", fmt.Sprintf("sf call %s failed after %s: %v", shortID(id), formatDuration(duration), err))
		return
	}

	// Completed calls are at DEBUG level
	if !cl.shouldLog("debug") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	metrics := formatRunMetrics(exitCode, duration, cl.colorOutput)
	message := fmt.Sprintf("[%s] sf call %s finished: %s\n", ts, shortID(id), metrics)

	cl.writer.Write([]byte(message))
}

// LogClassification logs an operation's final verdict at INFO level.
// Format: "[HH:MM:SS] apex-run: success (2s)"
func (cl *ConsoleLogger) LogClassification(kind models.OperationKind, c *models.Classification, duration time.Duration) {
	if cl.writer == nil {
		return
	}

	// Verdicts are at INFO level
	if !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	durationStr := formatDuration(duration)

	var categoryText string
	if cl.colorOutput {
		// Color code based on category
		switch c.Category {
		case models.CategorySuccess:
			categoryText = color.New(color.FgGreen).Sprint(c.Category.String())
		case models.CategoryPartialBatchFailure, models.CategoryValidationFailure:
			categoryText = color.New(color.FgYellow).Sprint(c.Category.String())
		default:
			categoryText = color.New(color.FgRed).Sprint(c.Category.String())
		}
	} else {
		categoryText = c.Category.String()
	}

	message := fmt.Sprintf("[%s] %s: %s (%s)", ts, kind, categoryText, durationStr)
	if c.Message != "" {
		message += " - " + c.Message
	}
	message += "\n"

	cl.writer.Write([]byte(message))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// shortID truncates a call id to its first uuid segment for log lines.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		remainder := d % time.Hour
		if remainder == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		minutes := remainder / time.Minute
		remainder = remainder % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	case d >= time.Minute:
		minutes := d / time.Minute
		remainder := d % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	}
}

// NoOpLogger is a Logger implementation that discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogInvocationStart is a no-op implementation.
func (n *NoOpLogger) LogInvocationStart(id, bin string, args []string) {
}

// LogInvocationDone is a no-op implementation.
func (n *NoOpLogger) LogInvocationDone(id string, exitCode int, duration time.Duration, err error) {
}

// LogClassification is a no-op implementation.
func (n *NoOpLogger) LogClassification(kind models.OperationKind, c *models.Classification, duration time.Duration) {
}
