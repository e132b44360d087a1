package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/tsmztech/sfkit/internal/apexlog"
	"github.com/tsmztech/sfkit/internal/models"
)

// RenderClassification renders a classified outcome for humans: a
// colored verdict line, the message, any operation detail, and the
// remediation hint last. JSON output mode bypasses this entirely.
func RenderClassification(w io.Writer, c *models.Classification) {
	renderVerdict(w, c.Category)

	if c.Message != "" {
		fmt.Fprintln(w, c.Message)
	}

	if c.Apex != nil {
		renderApex(w, c.Apex)
	}

	if c.Job != nil {
		renderJob(w, c.Job)
	}

	if c.Hint != "" {
		color.New(color.FgCyan).Fprintf(w, "Hint: %s\n", c.Hint)
	}
}

func renderVerdict(w io.Writer, cat models.Category) {
	switch cat {
	case models.CategorySuccess:
		color.New(color.FgGreen).Fprintf(w, "✓ %s\n", cat)
	case models.CategoryPartialBatchFailure:
		color.New(color.FgYellow).Fprintf(w, "⚠ %s\n", cat)
	default:
		color.New(color.FgRed).Fprintf(w, "✗ %s\n", cat)
	}
}

func renderApex(w io.Writer, r *models.ApexResult) {
	if r.CompileProblem != "" && r.Line > 0 {
		fmt.Fprintf(w, "  at line %d, column %d\n", r.Line, r.Column)
	}

	if r.ExceptionStackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", indent(r.ExceptionStackTrace))
	}

	if r.Logs == "" {
		return
	}

	if lines := apexlog.ExtractDebugLines(r.Logs); len(lines) > 0 {
		fmt.Fprintln(w, "Debug log:")
		for _, l := range lines {
			fmt.Fprintf(w, "  [%d] %s %s\n", l.Line, l.Level, l.Message)
		}
	}

	if stats := apexlog.ExtractUsage(r.Logs); len(stats) > 0 {
		fmt.Fprintln(w, "Resource usage:")
		fmt.Fprintln(w, RenderUsage(stats))
	}
}

func renderJob(w io.Writer, j *models.BulkJob) {
	if j.ID != "" {
		fmt.Fprintf(w, "Job %s (%s)\n", j.ID, j.State)
	}

	fmt.Fprintf(w, "Processed: %s  Failed: %s\n",
		apexlog.FormatCount(int64(j.NumberRecordsProcessed)),
		apexlog.FormatCount(int64(j.FailedCount())))

	if len(j.FailedRecords) > 0 {
		fmt.Fprintln(w, RenderFailures(j.FailedRecords))
	}
}

func indent(text string) string {
	return "  " + strings.ReplaceAll(text, "\n", "\n  ")
}
