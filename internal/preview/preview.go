// Package preview samples CSV files before a bulk load so the caller
// can see what is about to change in the org, and decides when a load
// is large enough to demand confirmation.
package preview

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// DefaultSampleRows is how many data rows a preview shows.
const DefaultSampleRows = 3

// DefaultWarnThreshold is the row count above which a load demands
// confirmation before executing.
const DefaultWarnThreshold = 1000

// SampleOptions configures how much of the file the preview shows.
type SampleOptions struct {
	// Rows is the number of data rows to include. Zero or negative
	// means DefaultSampleRows.
	Rows int
}

// Sample is the preview of one CSV file. Reading the same file twice
// yields the same sample.
type Sample struct {
	// Header is the column names from the first row.
	Header []string
	// Rows holds up to the requested number of data rows, in file order.
	Rows [][]string
	// Total is the number of data rows in the file, header excluded.
	Total int
	// Elided is how many data rows the preview does not show.
	Elided int
}

// SampleFile reads the CSV at path and returns its preview. Every row
// must match the header's column count; blank lines are not rows.
func SampleFile(path string, opts SampleOptions) (*Sample, error) {
	rows := opts.Rows
	if rows <= 0 {
		rows = DefaultSampleRows
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV file %s has no header row", path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	sample := &Sample{Header: header, Rows: make([][]string, 0, rows)}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV rows: %w", err)
		}
		sample.Total++
		if len(sample.Rows) < rows {
			sample.Rows = append(sample.Rows, record)
		}
	}
	sample.Elided = sample.Total - len(sample.Rows)
	return sample, nil
}

// RequiresConfirmation reports whether a load of count rows is large
// enough to demand explicit confirmation. How to confirm stays with the
// caller; this only computes the flag. A threshold of zero or less
// means DefaultWarnThreshold.
func RequiresConfirmation(count, threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultWarnThreshold
	}
	return count > threshold
}
