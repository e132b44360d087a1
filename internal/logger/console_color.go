package logger

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
)

// colorScheme defines consistent colors for different metric types.
// Green: success/positive metrics
// Red: failure/error metrics
// Cyan: labels and identifiers
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	label   *color.Color
	value   *color.Color
}

// newColorScheme creates the standard color scheme for metrics.
func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats a single "label: value" pair with colors.
func formatColorizedMetric(label, value string, valueColor *color.Color, scheme *colorScheme) string {
	return fmt.Sprintf("%s: %s", scheme.label.Sprint(label), valueColor.Sprint(value))
}

// formatRunMetrics builds the completion summary for one sf CLI call.
// Example: "exit: 0, took: 2s"
// The exit value is green for zero, red otherwise.
func formatRunMetrics(exitCode int, duration time.Duration, colorized bool) string {
	if !colorized {
		return fmt.Sprintf("exit: %d, took: %s", exitCode, formatDuration(duration))
	}

	scheme := newColorScheme()

	exitColor := scheme.success
	if exitCode != 0 {
		exitColor = scheme.fail
	}

	parts := []string{
		formatColorizedMetric("exit", fmt.Sprintf("%d", exitCode), exitColor, scheme),
		formatColorizedMetric("took", formatDuration(duration), scheme.value, scheme),
	}

	return strings.Join(parts, ", ")
}
