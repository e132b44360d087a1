// Package display provides terminal UI utilities for rendering results, warnings, and prompts.
//
// This package centralizes all terminal output formatting and user-facing display logic
// for the sfkit CLI. Classified results, CSV previews, and record failure reports all
// render through here, so commands stay free of formatting concerns. It provides three
// main categories of functionality:
//
// # Result Rendering
//
// Render a classified outcome for humans (the --json path bypasses this entirely):
//
//	display.RenderClassification(os.Stdout, classification)
//
// Tabular views are built with go-pretty:
//
//	fmt.Fprintln(os.Stdout, display.RenderPreview(sample))
//	fmt.Fprintln(os.Stdout, display.RenderFailures(job.FailedRecords))
//
// # Warning Messages
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "Large data load",
//	    Message:    "1,500 records will be written to Account",
//	    Files:      []string{"data/accounts.csv"},
//	    Suggestion: "Pass --yes to skip this prompt in scripts",
//	}
//	warning.Display(os.Stderr)
//
// # Confirmation Prompts
//
// Gate destructive operations on an interactive yes:
//
//	ok, err := display.Confirm(os.Stdin, os.Stderr, "Proceed with the load?", assumeYes)
//
// A non-terminal stdin declines automatically unless --yes was given, so a
// misdirected pipe can never approve a load by accident.
//
// All functions accept io.Writer interfaces for testability and flexibility.
package display
