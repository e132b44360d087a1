package sfcli

import (
	"context"
	"io"
	"os"
	"os/exec"
	"runtime"
)

// ShellExecEnv forces the string-form shell runner on platforms where
// direct execution would normally be used.
const ShellExecEnv = "SFKIT_SHELL_EXEC"

// ProcessRunner executes one external command, streaming its output
// into the supplied writers. The variant is chosen once at startup and
// reused for every invocation.
type ProcessRunner interface {
	// Name identifies the runner variant in logs.
	Name() string

	// Run blocks until the command exits or ctx is done. The returned
	// error follows os/exec conventions: *exec.ExitError for non-zero
	// exits, other errors when the process could not run at all.
	Run(ctx context.Context, bin string, args []string, stdout, stderr io.Writer) error
}

// ExecRunner launches the tool directly from an argument vector.
type ExecRunner struct{}

// Name identifies the runner variant.
func (ExecRunner) Name() string { return "exec" }

// Run executes bin with args and captures both streams.
func (ExecRunner) Run(ctx context.Context, bin string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// ShellRunner launches the tool through the host shell as a single
// escaped command string. Windows needs this because the sf launcher
// installed by npm is a cmd batch file that only the shell can resolve.
type ShellRunner struct {
	// Shell is the interpreter binary, e.g. cmd.exe or sh.
	Shell string

	// ShellArgs precede the command string, e.g. /d /s /c or -c.
	ShellArgs []string

	// Mode is the quoting convention for the command string.
	Mode EscapeMode
}

// NewShellRunner returns the shell runner for the current platform:
// cmd.exe with cmd quoting on Windows, sh -c with POSIX quoting
// everywhere else.
func NewShellRunner() *ShellRunner {
	if runtime.GOOS == "windows" {
		return &ShellRunner{
			Shell:     "cmd.exe",
			ShellArgs: []string{"/d", "/s", "/c"},
			Mode:      EscapeCmd,
		}
	}
	return &ShellRunner{
		Shell:     "sh",
		ShellArgs: []string{"-c"},
		Mode:      EscapePosix,
	}
}

// Name identifies the runner variant.
func (r *ShellRunner) Name() string { return "shell" }

// Run renders the escaped command line and executes it via the shell.
func (r *ShellRunner) Run(ctx context.Context, bin string, args []string, stdout, stderr io.Writer) error {
	line := BuildCommandLine(bin, args, r.Mode)
	argv := append(append([]string{}, r.ShellArgs...), line)
	cmd := exec.CommandContext(ctx, r.Shell, argv...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// DefaultRunner selects the runner variant for this process. The check
// happens once; callers hold on to the result instead of re-testing
// the platform per call.
func DefaultRunner() ProcessRunner {
	if runtime.GOOS == "windows" || os.Getenv(ShellExecEnv) == "1" {
		return NewShellRunner()
	}
	return ExecRunner{}
}
