package cmd

import (
	"fmt"
	"os/exec"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tsmztech/sfkit/internal/classify"
	"github.com/tsmztech/sfkit/internal/models"
	"github.com/tsmztech/sfkit/internal/sfcli"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the sf CLI and org connectivity",
		Long: `Check that the environment can actually run operations.

Two probes: the sf binary must resolve on PATH, and the target org
must answer an org display call. Each check prints a pass or fail
line; the first failure decides the exit code and comes with the
remediation hint a failed operation would have shown.

Examples:
  # Check the default org
  sfkit doctor

  # Check a specific org alias
  sfkit doctor --target-org my-sandbox`,
		Args: cobra.NoArgs,
		RunE: runDoctorCommand,
	}

	cmd.Flags().String("target-org", "", "Org alias to probe (default: the sf default org)")
	cmd.Flags().String("timeout", "", "Probe timeout as a duration, e.g. 30s (default: 10m)")
	cmd.Flags().Bool("verbose", false, "Show invocation detail on stderr")
	cmd.Flags().String("log-dir", "", "Directory for run logs (default: file logging off)")
	cmd.Flags().String("config", "", "Path to config file (default: .sfkit/config.yaml)")

	return cmd
}

// runDoctorCommand implements the doctor command logic
func runDoctorCommand(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()

	path, err := exec.LookPath(s.invoker.BinPath)
	if err != nil {
		color.New(color.FgRed).Fprintf(out, "✗ %s not found\n", s.invoker.BinPath)
		color.New(color.FgCyan).Fprintf(out, "Hint: %s\n", classify.HintInstall)
		return fmt.Errorf("sf CLI not found")
	}
	color.New(color.FgGreen).Fprintf(out, "✓ %s found at %s\n", s.invoker.BinPath, path)

	probe := s.invoker.Execute(cmd.Context(), sfcli.Invocation{
		Args:    []string{"org", "display", "--json"},
		Org:     s.cfg.Org,
		Timeout: s.cfg.Timeout,
	})
	c := classify.Classify(probe, models.KindProbe)
	s.log.LogClassification(models.KindProbe, c, probe.Duration)
	if s.fileLog != nil {
		if err := s.fileLog.LogCallTranscript(probe, s.call.bin, s.call.args); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to write call transcript: %v\n", err)
		}
	}

	if !c.OK() {
		color.New(color.FgRed).Fprintf(out, "✗ org not reachable: %s\n", c.Message)
		if c.Hint != "" {
			color.New(color.FgCyan).Fprintf(out, "Hint: %s\n", c.Hint)
		}
		return fmt.Errorf("org check failed")
	}

	if s.cfg.Org != "" {
		color.New(color.FgGreen).Fprintf(out, "✓ org %s reachable\n", s.cfg.Org)
	} else {
		color.New(color.FgGreen).Fprintln(out, "✓ default org reachable")
	}
	return nil
}
