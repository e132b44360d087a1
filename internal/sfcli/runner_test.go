package sfcli

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"strings"
	"testing"
)

func TestDefaultRunnerSelection(t *testing.T) {
	t.Run("forced shell mode", func(t *testing.T) {
		t.Setenv(ShellExecEnv, "1")
		if _, ok := DefaultRunner().(*ShellRunner); !ok {
			t.Errorf("DefaultRunner() = %T, want *ShellRunner", DefaultRunner())
		}
	})

	t.Run("platform default", func(t *testing.T) {
		t.Setenv(ShellExecEnv, "")
		r := DefaultRunner()
		if runtime.GOOS == "windows" {
			if _, ok := r.(*ShellRunner); !ok {
				t.Errorf("DefaultRunner() = %T, want *ShellRunner on windows", r)
			}
		} else {
			if _, ok := r.(ExecRunner); !ok {
				t.Errorf("DefaultRunner() = %T, want ExecRunner", r)
			}
		}
	})
}

func TestRunnerNames(t *testing.T) {
	if got := (ExecRunner{}).Name(); got != "exec" {
		t.Errorf("ExecRunner.Name() = %q", got)
	}
	if got := NewShellRunner().Name(); got != "shell" {
		t.Errorf("ShellRunner.Name() = %q", got)
	}
}

func TestExecRunnerRealProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}

	var stdout, stderr bytes.Buffer
	err := ExecRunner{}.Run(context.Background(), "sh",
		[]string{"-c", "echo out; echo err 1>&2; exit 3"}, &stdout, &stderr)

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("err = %v, want *exec.ExitError", err)
	}
	if exitErr.ExitCode() != 3 {
		t.Errorf("ExitCode() = %d, want 3", exitErr.ExitCode())
	}
	if strings.TrimSpace(stdout.String()) != "out" {
		t.Errorf("stdout = %q", stdout.String())
	}
	if strings.TrimSpace(stderr.String()) != "err" {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestShellRunnerPreservesMetacharacters(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exercised through cmd.exe on windows hosts")
	}

	var stdout, stderr bytes.Buffer
	r := NewShellRunner()
	err := r.Run(context.Background(), "echo",
		[]string{"x&y|z", "(parens)", "100%"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("Run() error = %v, stderr = %q", err, stderr.String())
	}

	if got := strings.TrimSpace(stdout.String()); got != "x&y|z (parens) 100%" {
		t.Errorf("stdout = %q", got)
	}
}
