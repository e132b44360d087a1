package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsmztech/sfkit/internal/classify"
	"github.com/tsmztech/sfkit/internal/models"
	"github.com/tsmztech/sfkit/internal/sfcli"
)

// NewApexCommand creates the apex command group
func NewApexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apex",
		Short: "Execute Apex code in an org",
	}

	cmd.AddCommand(NewApexRunCommand())

	return cmd
}

// NewApexRunCommand creates the apex run command
func NewApexRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run anonymous Apex and report the classified verdict",
		Long: `Run anonymous Apex code against a Salesforce org.

The source is read from --file, or from stdin when no file is given.
sfkit stages the code into a temporary file, hands it to sf apex run,
and classifies the outcome: compile failure with the problem position,
runtime failure with the exception and stack trace, or success with
the extracted debug lines and resource usage.

Configuration is loaded from .sfkit/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  # Run a file of Apex
  sfkit apex run -f insert_accounts.apex

  # Pipe source from stdin
  echo 'System.debug(42);' | sfkit apex run

  # Pin the call to one authenticated org
  sfkit apex run -f nightly_job.apex --target-org dev-sandbox

  # Machine-readable result payload on stdout
  sfkit apex run -f nightly_job.apex --json

  # Bound the invocation and keep a detailed run log
  sfkit apex run -f slow_batch.apex --timeout 30m --log-dir ./logs`,
		Args: cobra.NoArgs,
		RunE: runApexCommand,
	}

	cmd.Flags().StringP("file", "f", "", "File holding the Apex source (default: read stdin)")
	cmd.Flags().String("target-org", "", "Org alias to run against (default: the sf default org)")
	cmd.Flags().String("timeout", "", "Maximum invocation time (e.g. 30s, 10m)")
	cmd.Flags().Bool("json", false, "Print the decoded result payload as JSON on stdout")
	cmd.Flags().Bool("verbose", false, "Show invocation detail on stderr")
	cmd.Flags().String("log-dir", "", "Directory for run logs (default: file logging off)")
	cmd.Flags().String("config", "", "Path to config file (default: .sfkit/config.yaml)")

	return cmd
}

// runApexCommand implements the apex run command logic
func runApexCommand(cmd *cobra.Command, args []string) error {
	source, err := readApexSource(cmd)
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	out := s.invoker.Execute(cmd.Context(), sfcli.Invocation{
		Args:        []string{"apex", "run", "--json"},
		Org:         s.cfg.Org,
		Timeout:     s.cfg.Timeout,
		Payload:     source,
		PayloadFlag: "--file",
		PayloadExt:  ".apex",
	})
	c := classify.Classify(out, models.KindApexRun)

	jsonOut, _ := cmd.Flags().GetBool("json")
	return finish(cmd, s, models.KindApexRun, c, out, jsonOut)
}

// readApexSource reads the Apex body from --file, or from stdin when no
// file is given.
func readApexSource(cmd *cobra.Command) ([]byte, error) {
	path, _ := cmd.Flags().GetString("file")
	if path != "" {
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read Apex source: %w", err)
		}
		return source, nil
	}

	source, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read Apex source from stdin: %w", err)
	}
	if len(bytes.TrimSpace(source)) == 0 {
		return nil, fmt.Errorf("no Apex source: pass --file or pipe code on stdin")
	}
	return source, nil
}
