package display

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tsmztech/sfkit/internal/apexlog"
	"github.com/tsmztech/sfkit/internal/models"
	"github.com/tsmztech/sfkit/internal/preview"
)

// RenderPreview renders a CSV sample as a table. Column order follows
// the file's header row.
func RenderPreview(s *preview.Sample) string {
	previewTable := table.NewWriter()

	header := make(table.Row, 0, len(s.Header))
	for _, col := range s.Header {
		header = append(header, col)
	}
	previewTable.AppendHeader(header)

	for _, row := range s.Rows {
		dataRow := make(table.Row, 0, len(row))
		for _, cell := range row {
			dataRow = append(dataRow, cell)
		}
		previewTable.AppendRow(dataRow)
	}

	return previewTable.Render()
}

var failureHeader = table.Row{
	"#",
	"Record ID",
	"Error",
}

// RenderFailures renders every failed record from a bulk job. The
// record id column is blank for rows the API could not attribute.
func RenderFailures(failures []models.RecordFailure) string {
	failureTable := table.NewWriter()
	failureTable.AppendHeader(failureHeader)

	for i, f := range failures {
		failureTable.AppendRow(table.Row{
			fmt.Sprintf("%d", i+1),
			f.RecordID,
			f.Message,
		})
	}

	return failureTable.Render()
}

var usageHeader = table.Row{
	"Resource",
	"Used",
	"Limit",
}

// RenderUsage renders the resource counters mined from an Apex debug
// log. Byte-valued counters keep their thousands separators.
func RenderUsage(stats []apexlog.UsageStat) string {
	usageTable := table.NewWriter()
	usageTable.AppendHeader(usageHeader)

	for _, s := range stats {
		used := fmt.Sprintf("%d", s.Used)
		limit := fmt.Sprintf("%d", s.Limit)
		if s.Bytes {
			used = apexlog.FormatCount(s.Used)
			limit = apexlog.FormatCount(s.Limit)
		}
		usageTable.AppendRow(table.Row{s.Name, used, limit})
	}

	return usageTable.Render()
}
