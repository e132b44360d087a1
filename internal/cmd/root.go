package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for sfkit
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sfkit",
		Short: "Salesforce CLI companion for Apex runs and bulk data loads",
		Long: `sfkit wraps the Salesforce CLI (sf) with a stable result model.

It runs anonymous Apex, bulk-loads CSV data, and previews datasets,
normalizing the CLI's mix of JSON envelopes, free-text errors, and
embedded debug logs into one classified verdict per operation.`,
		Version: Version,
		// Silence usage and cobra's own error print; main reports errors
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	cmd.AddCommand(NewApexCommand())
	cmd.AddCommand(NewDataCommand())
	cmd.AddCommand(NewDoctorCommand())

	return cmd
}
