package main

import (
	"fmt"

	"github.com/bibkit/bibkit/internal/bib"
	"github.com/bibkit/bibkit/internal/bibfile"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [file.bib]",
	Short: "Parse a bib file and report problems",
	Long: `Parse a bib file tolerantly and report every problem found:
syntax errors (the affected entries are skipped), invalid field
values, missing required fields, and duplicate keys. Findings are
advisory; the command fails only when the file cannot be read.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status   string             `json:"status"`
	Path     string             `json:"path"`
	Entries  int                `json:"entries"`
	Errors   int                `json:"errors"`
	Warnings int                `json:"warnings"`
	Findings []DiagnosticReport `json:"findings"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := resolveBibPath(args)

	f := bibfile.New(path)
	if err := f.Read(); err != nil {
		exitWithError(ExitDataError, "reading %s: %v", f.Path(), err)
	}

	diags := f.Diagnostics()
	diags = append(diags, f.Library().Check()...)

	var errors, warnings int
	for _, d := range diags {
		if d.Severity == bib.SeverityError {
			errors++
		} else {
			warnings++
		}
	}

	status := "ok"
	if errors > 0 {
		status = "errors"
	} else if warnings > 0 {
		status = "warnings"
	}

	if humanOutput {
		printDiagnosticsHuman(f.Path(), diags)
		fmt.Printf("%s: %d entries, %d errors, %d warnings\n",
			f.Path(), f.Library().Len(), errors, warnings)
		return nil
	}
	return outputJSON(CheckResult{
		Status:   status,
		Path:     f.Path(),
		Entries:  f.Library().Len(),
		Errors:   errors,
		Warnings: warnings,
		Findings: reportDiagnostics(diags),
	})
}
