package main

import (
	"fmt"

	"github.com/bibkit/bibkit/internal/attach"
	"github.com/bibkit/bibkit/internal/bibfile"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(renameCmd)
}

var renameCmd = &cobra.Command{
	Use:   "rename [file.bib]",
	Short: "Rename linked attachments after their entry keys",
	Long: `Rename each entry's first linked attachment to <key>.<ext> in
place and rewrite the file field to match. Attachments that are
already named correctly are left alone; missing files are
reported but don't stop the run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRename,
}

// RenameReport is the JSON shape of one renamed attachment.
type RenameReport struct {
	Key string `json:"key"`
	Old string `json:"old"`
	New string `json:"new"`
}

// RenameResult is the response for the rename command.
type RenameResult struct {
	Status   string             `json:"status"`
	Path     string             `json:"path"`
	Renamed  []RenameReport     `json:"renamed"`
	Findings []DiagnosticReport `json:"findings,omitempty"`
}

func runRename(cmd *cobra.Command, args []string) error {
	path := resolveBibPath(args)

	f := bibfile.New(path)
	if err := f.Read(); err != nil {
		exitWithError(ExitDataError, "reading %s: %v", f.Path(), err)
	}

	renames, diags, err := attach.RenameAll(f.Library(), f.Dir())
	if err != nil {
		exitWithError(ExitError, "renaming attachments: %v", err)
	}

	if len(renames) > 0 {
		if err := f.Write(); err != nil {
			exitWithError(ExitError, "writing %s: %v", f.Path(), err)
		}
	}

	if humanOutput {
		printDiagnosticsHuman(f.Path(), diags)
		for _, r := range renames {
			fmt.Printf("  %s: %s -> %s\n", r.Key, r.OldPath, r.NewPath)
		}
		fmt.Printf("%s: %d attachments renamed\n", f.Path(), len(renames))
		return nil
	}

	out := make([]RenameReport, len(renames))
	for i, r := range renames {
		out[i] = RenameReport{Key: r.Key, Old: r.OldPath, New: r.NewPath}
	}
	return outputJSON(RenameResult{
		Status:   "ok",
		Path:     f.Path(),
		Renamed:  out,
		Findings: reportDiagnostics(diags),
	})
}
