package apexlog

import (
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// UsageStat is one resource counter from the log's cumulative limit
// section. Used and Limit are exact integers; display formatting never
// touches the underlying values.
type UsageStat struct {
	Name  string
	Used  int64
	Limit int64

	// Bytes marks byte-valued counters, which are rendered with
	// thousands separators.
	Bytes bool
}

var (
	// Pattern 1: Number of SOQL queries: 1 out of 100
	soqlPattern = regexp.MustCompile(`Number of SOQL queries: (\d+) out of (\d+)`)

	// Pattern 2: Number of DML statements: 2 out of 150
	dmlPattern = regexp.MustCompile(`Number of DML statements: (\d+) out of (\d+)`)

	// Pattern 3: Maximum heap size: 1024 out of 6000000
	heapPattern = regexp.MustCompile(`Maximum heap size: (\d+) out of (\d+)`)
)

// englishPrinter renders counts the way en locales group digits.
var englishPrinter = message.NewPrinter(language.English)

// ExtractUsage mines resource counters from log text. Each counter is
// independent and optional: a missing pattern means that counter is
// omitted from the result, not an error.
func ExtractUsage(logText string) []UsageStat {
	if logText == "" {
		return nil
	}

	var stats []UsageStat
	if s, ok := matchCounter(soqlPattern, "SOQL queries", false, logText); ok {
		stats = append(stats, s)
	}
	if s, ok := matchCounter(dmlPattern, "DML statements", false, logText); ok {
		stats = append(stats, s)
	}
	if s, ok := matchCounter(heapPattern, "Heap size", true, logText); ok {
		stats = append(stats, s)
	}
	return stats
}

func matchCounter(pattern *regexp.Regexp, name string, bytes bool, logText string) (UsageStat, bool) {
	matches := pattern.FindStringSubmatch(logText)
	if len(matches) < 3 {
		return UsageStat{}, false
	}
	used, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return UsageStat{}, false
	}
	limit, err := strconv.ParseInt(matches[2], 10, 64)
	if err != nil {
		return UsageStat{}, false
	}
	return UsageStat{Name: name, Used: used, Limit: limit, Bytes: bytes}, true
}

// FormatCount renders an exact integer with locale-aware thousands
// separators for display.
func FormatCount(n int64) string {
	return englishPrinter.Sprintf("%d", n)
}

// Display renders the stat for humans. Byte counters get separators so
// heap numbers stay readable.
func (s UsageStat) Display() string {
	if s.Bytes {
		return fmt.Sprintf("%s: %s of %s bytes", s.Name, FormatCount(s.Used), FormatCount(s.Limit))
	}
	return fmt.Sprintf("%s: %d of %d", s.Name, s.Used, s.Limit)
}
