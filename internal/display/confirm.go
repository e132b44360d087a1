package display

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Confirm asks the user a yes/no question and reports their answer.
// Anything other than "y" or "yes" (case-insensitive) declines.
//
// assumeYes answers without prompting, for --yes and scripted runs.
// When in is a non-terminal file (a pipe or redirect) the question is
// declined without reading, so accidental input can never approve an
// operation; scripts must opt in explicitly.
func Confirm(in io.Reader, out io.Writer, question string, assumeYes bool) (bool, error) {
	if assumeYes {
		fmt.Fprintf(out, "%s [y/N]: y (auto-confirmed)\n", question)
		return true, nil
	}

	if f, ok := in.(*os.File); ok {
		if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			fmt.Fprintf(out, "%s [y/N]: n (not a terminal; pass --yes to confirm)\n", question)
			return false, nil
		}
	}

	fmt.Fprintf(out, "%s [y/N]: ", question)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
