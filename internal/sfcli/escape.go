package sfcli

import (
	"fmt"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
)

// EscapeMode selects the quoting convention for string-form command lines.
type EscapeMode int

const (
	// EscapeCmd quotes for cmd.exe: arguments containing metacharacters
	// are wrapped in double quotes with internal quotes doubled.
	EscapeCmd EscapeMode = iota
	// EscapePosix quotes for sh -c using single quotes.
	EscapePosix
)

// cmdMeta is the set of characters cmd.exe interprets outside quotes.
const cmdMeta = "()&|<>^%!\" \t"

// EscapeArg quotes a single argument so it reaches the external tool
// unaltered after the host shell re-parses the command string.
func EscapeArg(arg string, mode EscapeMode) string {
	if mode == EscapePosix {
		return escapePosix(arg)
	}
	return escapeCmd(arg)
}

// UnescapeArg is the inverse of EscapeArg for a single quoted token.
func UnescapeArg(arg string, mode EscapeMode) (string, error) {
	if mode == EscapePosix {
		return unescapePosix(arg)
	}
	return unescapeCmd(arg)
}

// BuildCommandLine renders the binary and its arguments as one shell
// command string under the given quoting mode.
func BuildCommandLine(bin string, args []string, mode EscapeMode) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, EscapeArg(bin, mode))
	for _, a := range args {
		parts = append(parts, EscapeArg(a, mode))
	}
	return strings.Join(parts, " ")
}

func escapeCmd(arg string) string {
	if arg == "" {
		return `""`
	}
	if !strings.ContainsAny(arg, cmdMeta) {
		return arg
	}
	return `"` + strings.ReplaceAll(arg, `"`, `""`) + `"`
}

func unescapeCmd(arg string) (string, error) {
	if len(arg) < 2 || arg[0] != '"' || arg[len(arg)-1] != '"' {
		return arg, nil
	}
	inner := arg[1 : len(arg)-1]
	if strings.Count(inner, `"`)%2 != 0 {
		return "", fmt.Errorf("unbalanced quotes in %q", arg)
	}
	return strings.ReplaceAll(inner, `""`, `"`), nil
}

func escapePosix(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, " \t\n\"'`$&|<>^%!();*?[]\\#~{}") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

func unescapePosix(arg string) (string, error) {
	if !strings.ContainsAny(arg, `'\`) {
		return arg, nil
	}
	words, err := shellwords.Parse(arg)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", arg, err)
	}
	if len(words) != 1 {
		return "", fmt.Errorf("expected one token in %q, got %d", arg, len(words))
	}
	return words[0], nil
}
