// Package apexlog extracts structured facts from Apex debug log text:
// USER_DEBUG entries and resource usage counters. Everything here is
// derived data, recomputed per invocation and never persisted.
package apexlog

import (
	"regexp"
	"strconv"
	"strings"
)

// DebugLine is one USER_DEBUG entry mined from a debug log.
type DebugLine struct {
	// Line is the 1-based source line of the System.debug call.
	Line int

	// Level is the severity token, e.g. DEBUG, INFO, ERROR.
	Level string

	// Message is the logged text, verbatim.
	Message string
}

var (
	// Pattern 1: 08:15:30.1 (1234567)|USER_DEBUG|[7]|DEBUG|hello
	userDebugPattern = regexp.MustCompile(`\|USER_DEBUG\|\[(\d+)\]\|(\w+)\|(.*)`)
)

// ExtractDebugLines scans log text line by line for USER_DEBUG markers.
// Lines that do not match are ignored. Order is preserved: log order is
// source execution order.
func ExtractDebugLines(logText string) []DebugLine {
	if logText == "" {
		return nil
	}

	var lines []DebugLine
	for _, raw := range strings.Split(logText, "\n") {
		matches := userDebugPattern.FindStringSubmatch(raw)
		if len(matches) < 4 {
			continue
		}
		num, err := strconv.Atoi(matches[1])
		if err != nil {
			continue
		}
		lines = append(lines, DebugLine{
			Line:    num,
			Level:   matches[2],
			Message: matches[3],
		})
	}
	return lines
}
