package logger

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
)

// TestFormatRunMetricsPlain verifies the uncolored completion summary.
func TestFormatRunMetricsPlain(t *testing.T) {
	tests := []struct {
		name     string
		exitCode int
		duration time.Duration
		expected string
	}{
		{"clean exit", 0, 2 * time.Second, "exit: 0, took: 2s"},
		{"failed exit", 1, 90 * time.Second, "exit: 1, took: 1m30s"},
		{"transport exit", -1, 0, "exit: -1, took: 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatRunMetrics(tt.exitCode, tt.duration, false)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

// TestFormatRunMetricsColorized verifies ANSI codes appear when color is forced on.
func TestFormatRunMetricsColorized(t *testing.T) {
	oldNoColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = oldNoColor }()

	result := formatRunMetrics(0, 2*time.Second, true)

	if !strings.Contains(result, "\x1b[") {
		t.Errorf("expected ANSI color codes, got %q", result)
	}
	if !strings.Contains(result, "exit") {
		t.Errorf("expected exit label, got %q", result)
	}
	if !strings.Contains(result, "took") {
		t.Errorf("expected took label, got %q", result)
	}
}

// TestFormatRunMetricsRedOnFailure verifies a non-zero exit uses the failure color.
func TestFormatRunMetricsRedOnFailure(t *testing.T) {
	oldNoColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = oldNoColor }()

	result := formatRunMetrics(1, time.Second, true)

	// FgRed is ANSI code 31
	if !strings.Contains(result, "\x1b[31m") {
		t.Errorf("expected red exit code for failure, got %q", result)
	}
}

// TestFormatRunMetricsGreenOnSuccess verifies a zero exit uses the success color.
func TestFormatRunMetricsGreenOnSuccess(t *testing.T) {
	oldNoColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = oldNoColor }()

	result := formatRunMetrics(0, time.Second, true)

	// FgGreen is ANSI code 32
	if !strings.Contains(result, "\x1b[32m") {
		t.Errorf("expected green exit code for success, got %q", result)
	}
}

// TestFormatColorizedMetricDisabledWhenNoColor verifies no ANSI codes leak when color is off.
func TestFormatColorizedMetricDisabledWhenNoColor(t *testing.T) {
	oldNoColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = oldNoColor }()

	scheme := newColorScheme()
	result := formatColorizedMetric("exit", "0", scheme.success, scheme)

	// Result should NOT contain ANSI color codes when NoColor is true
	if strings.Contains(result, "\x1b[") {
		t.Errorf("expected no ANSI color codes when NoColor=true, got %q", result)
	}
	if result != "exit: 0" {
		t.Errorf("expected plain label pair, got %q", result)
	}
}
