package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsmztech/sfkit/internal/bulk"
	"github.com/tsmztech/sfkit/internal/display"
	"github.com/tsmztech/sfkit/internal/models"
	"github.com/tsmztech/sfkit/internal/preview"
)

// NewDataCommand creates the data command group
func NewDataCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Bulk data operations against an org",
	}

	cmd.AddCommand(NewDataLoadCommand())
	cmd.AddCommand(NewDataPreviewCommand())
	cmd.AddCommand(NewDataStatusCommand())

	return cmd
}

// NewDataLoadCommand creates the data load command
func NewDataLoadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <object>",
		Short: "Bulk-load a CSV file into an org",
		Long: `Bulk-load CSV rows into a Salesforce object.

The file is previewed before anything is written: header, the first
few rows, and the total row count. Loads above the warning threshold
(1000 rows by default) demand confirmation; pass --yes to confirm in
scripts, since a non-interactive run aborts rather than guessing.

The load is submitted through sf data <operation> bulk with the tool's
own wait flag, then the terminal job state is classified: completed,
completed with per-record failures (each one reported), failed
wholesale, or still running after the wait budget.

Operation flag rules:
  insert  rejects --external-id
  upsert  requires --external-id
  update  defaults --external-id to Id

Examples:
  # Insert contacts and wait up to 10 minutes
  sfkit data load Contact --file contacts.csv

  # Upsert on a custom external id field
  sfkit data load Contact --file contacts.csv --operation upsert --external-id Email__c

  # Large scripted load: skip the confirmation prompt
  sfkit data load Account --file accounts.csv --wait 30 --yes

  # Machine-readable job result
  sfkit data load Account --file accounts.csv --yes --json`,
		Args: cobra.ExactArgs(1),
		RunE: runDataLoadCommand,
	}

	cmd.Flags().StringP("file", "f", "", "CSV file holding the rows to load")
	cmd.Flags().String("operation", "", "Mutation verb: insert, upsert, or update (default: insert)")
	cmd.Flags().String("external-id", "", "Matching field for upsert and update")
	cmd.Flags().Int("wait", 0, "Minutes to wait for the job (default: 10)")
	cmd.Flags().String("target-org", "", "Org alias to load into (default: the sf default org)")
	cmd.Flags().Bool("json", false, "Print the decoded job result as JSON on stdout")
	cmd.Flags().Bool("yes", false, "Confirm large loads without prompting")
	cmd.Flags().Bool("verbose", false, "Show invocation detail on stderr")
	cmd.Flags().String("log-dir", "", "Directory for run logs (default: file logging off)")
	cmd.Flags().String("config", "", "Path to config file (default: .sfkit/config.yaml)")

	return cmd
}

// runDataLoadCommand implements the data load command logic
func runDataLoadCommand(cmd *cobra.Command, args []string) error {
	object := args[0]
	file, _ := cmd.Flags().GetString("file")
	operation, _ := cmd.Flags().GetString("operation")
	externalID, _ := cmd.Flags().GetString("external-id")
	assumeYes, _ := cmd.Flags().GetBool("yes")
	jsonOut, _ := cmd.Flags().GetBool("json")

	op, err := models.ParseLoadOperation(operation)
	if err != nil {
		return err
	}
	if strings.TrimSpace(file) == "" {
		return fmt.Errorf("a CSV file is required: pass --file")
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	sample, err := preview.SampleFile(file, preview.SampleOptions{Rows: s.cfg.SampleRows})
	if err != nil {
		return err
	}

	if !jsonOut {
		out := cmd.OutOrStdout()
		display.PreviewHeader(out, file)
		fmt.Fprintln(out, display.RenderPreview(sample))
		display.PreviewSummary(out, sample)
	}

	// The safety gate goes to stderr so it reaches the terminal even
	// when stdout is piped or reserved for JSON.
	if preview.RequiresConfirmation(sample.Total, s.cfg.WarnThreshold) {
		display.WarnLargeLoad(sample.Total, object, file).Display(cmd.ErrOrStderr())
		ok, err := display.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Proceed with the load", assumeYes)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("load aborted")
		}
	}

	res := bulk.NewTracker(s.invoker).Load(cmd.Context(), bulk.LoadRequest{
		Object:      object,
		File:        file,
		Operation:   op,
		ExternalID:  externalID,
		WaitMinutes: s.cfg.WaitMinutes,
		Org:         s.cfg.Org,
	})
	return finish(cmd, s, models.KindBulkLoad, res.Classification, res.Outcome, jsonOut)
}

// NewDataPreviewCommand creates the data preview command
func NewDataPreviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview a CSV file without touching any org",
		Long: `Preview a CSV file: header, the first rows, and row counts.

This is the same preview a load shows before executing, available
standalone. Every row must match the header's column count; a ragged
file is reported as an error rather than silently truncated.

Examples:
  # Default sample of 3 data rows
  sfkit data preview --file contacts.csv

  # Show ten rows
  sfkit data preview --file contacts.csv --sample 10`,
		Args: cobra.NoArgs,
		RunE: runDataPreviewCommand,
	}

	cmd.Flags().StringP("file", "f", "", "CSV file to preview")
	cmd.Flags().Int("sample", 0, "Data rows to show (default: 3)")
	cmd.Flags().String("config", "", "Path to config file (default: .sfkit/config.yaml)")

	return cmd
}

// runDataPreviewCommand implements the data preview command logic
func runDataPreviewCommand(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	if strings.TrimSpace(file) == "" {
		return fmt.Errorf("a CSV file is required: pass --file")
	}

	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}

	rows := cfg.SampleRows
	if cmd.Flags().Changed("sample") {
		rows, _ = cmd.Flags().GetInt("sample")
	}

	sample, err := preview.SampleFile(file, preview.SampleOptions{Rows: rows})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	display.PreviewHeader(out, file)
	fmt.Fprintln(out, display.RenderPreview(sample))
	display.PreviewSummary(out, sample)

	return nil
}

// NewDataStatusCommand creates the data status command
func NewDataStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check a bulk job without waiting on it",
		Long: `Check the state of a bulk job out of band.

This is the remediation path a timed-out load points at: the job keeps
running in the org after sfkit stops waiting, and status reports how
far it got. A job that is still running is a normal answer here, not a
failure.

Examples:
  # Inspect a job by id
  sfkit data status --job-id 750XX0000004C92

  # Machine-readable job state
  sfkit data status --job-id 750XX0000004C92 --json`,
		Args: cobra.NoArgs,
		RunE: runDataStatusCommand,
	}

	cmd.Flags().String("job-id", "", "Bulk job id to inspect")
	cmd.Flags().String("target-org", "", "Org alias the job belongs to (default: the sf default org)")
	cmd.Flags().Bool("json", false, "Print the decoded job state as JSON on stdout")
	cmd.Flags().Bool("verbose", false, "Show invocation detail on stderr")
	cmd.Flags().String("log-dir", "", "Directory for run logs (default: file logging off)")
	cmd.Flags().String("config", "", "Path to config file (default: .sfkit/config.yaml)")

	return cmd
}

// runDataStatusCommand implements the data status command logic
func runDataStatusCommand(cmd *cobra.Command, args []string) error {
	jobID, _ := cmd.Flags().GetString("job-id")
	jsonOut, _ := cmd.Flags().GetBool("json")

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	res := bulk.NewTracker(s.invoker).Status(cmd.Context(), jobID, s.cfg.Org)
	return finish(cmd, s, models.KindBulkLoad, res.Classification, res.Outcome, jsonOut)
}
