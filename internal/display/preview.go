package display

import (
	"fmt"
	"io"

	"github.com/tsmztech/sfkit/internal/apexlog"
	"github.com/tsmztech/sfkit/internal/preview"
)

// PreviewHeader displays the opening line of a CSV preview
func PreviewHeader(w io.Writer, path string) {
	fmt.Fprintf(w, "Previewing %s:\n", path)
}

// PreviewSummary displays the row counts with a green checkmark.
// Counts use thousands separators; truncation is called out explicitly.
func PreviewSummary(w io.Writer, s *preview.Sample) {
	summary := fmt.Sprintf("%s data rows", apexlog.FormatCount(int64(s.Total)))
	if s.Elided > 0 {
		summary += fmt.Sprintf(" (%d shown, %s not shown)", len(s.Rows), apexlog.FormatCount(int64(s.Elided)))
	}
	fmt.Fprintf(w, "\x1b[32m✓\x1b[0m %s\n", summary)
}
