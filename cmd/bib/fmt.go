package main

import (
	"fmt"
	"os"

	"github.com/bibkit/bibkit/internal/bibfile"
	"github.com/bibkit/bibkit/internal/bibtex"
	"github.com/spf13/cobra"
)

var fmtStdout bool

func init() {
	fmtCmd.Flags().BoolVar(&fmtStdout, "stdout", false, "Print the formatted file instead of rewriting it")
	rootCmd.AddCommand(fmtCmd)
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [file.bib]",
	Short: "Rewrite a bib file in canonical form",
	Long: `Rewrite a bib file in canonical form: one entry per block,
two-space indented fields in brace delimiters, required fields
first, authors in comma form. Entry order is preserved. The file
is replaced atomically.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFmt,
}

func runFmt(cmd *cobra.Command, args []string) error {
	path := resolveBibPath(args)

	f := bibfile.New(path)
	if err := f.Read(); err != nil {
		exitWithError(ExitDataError, "reading %s: %v", f.Path(), err)
	}

	if fmtStdout {
		fmt.Fprint(os.Stdout, bibtex.Format(f.Library()))
		return nil
	}

	if err := f.Write(); err != nil {
		exitWithError(ExitError, "writing %s: %v", f.Path(), err)
	}

	if humanOutput {
		fmt.Printf("formatted %s (%d entries)\n", f.Path(), f.Library().Len())
		return nil
	}
	return outputJSON(StatusResponse{Status: "formatted", Path: f.Path()})
}
