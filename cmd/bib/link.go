package main

import (
	"fmt"

	"github.com/bibkit/bibkit/internal/attach"
	"github.com/bibkit/bibkit/internal/bibfile"
	"github.com/bibkit/bibkit/internal/config"
	"github.com/spf13/cobra"
)

var linkPDFDir string

func init() {
	linkCmd.Flags().StringVar(&linkPDFDir, "pdf-dir", "", "Directory of PDFs to match (default pdf_dir from config)")
	rootCmd.AddCommand(linkCmd)
}

var linkCmd = &cobra.Command{
	Use:   "link [file.bib]",
	Short: "Link PDFs to entries by the DOI in their text",
	Long: `Scan a directory of PDFs, extract the DOI from each one's text,
and set the file field of the matching entry when it has none yet.
PDFs without a recognizable DOI and DOIs with no matching entry
are skipped; a follow-up rename run brings the linked files onto
their citation keys.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLink,
}

// LinkReport is the JSON shape of one linked attachment.
type LinkReport struct {
	Key  string `json:"key"`
	DOI  string `json:"doi"`
	Path string `json:"path"`
}

// LinkResult is the response for the link command.
type LinkResult struct {
	Status   string             `json:"status"`
	Path     string             `json:"path"`
	Linked   []LinkReport       `json:"linked"`
	Findings []DiagnosticReport `json:"findings,omitempty"`
}

func runLink(cmd *cobra.Command, args []string) error {
	path := resolveBibPath(args)

	pdfDir := linkPDFDir
	if pdfDir == "" {
		cfg, err := config.Load()
		if err != nil {
			exitWithError(ExitConfigError, "loading config: %v", err)
		}
		pdfDir = cfg.PDFDir
	}
	if pdfDir == "" {
		exitWithError(ExitConfigError, "no PDF directory: pass --pdf-dir or set pdf_dir in %s", config.GlobalConfigPath())
	}

	f := bibfile.New(path)
	if err := f.Read(); err != nil {
		exitWithError(ExitDataError, "reading %s: %v", f.Path(), err)
	}

	links, diags, err := attach.LinkAll(f.Library(), pdfDir, f.Dir())
	if err != nil {
		exitWithError(ExitError, "linking attachments: %v", err)
	}

	if len(links) > 0 {
		if err := f.Write(); err != nil {
			exitWithError(ExitError, "writing %s: %v", f.Path(), err)
		}
	}

	if humanOutput {
		printDiagnosticsHuman(f.Path(), diags)
		for _, l := range links {
			fmt.Printf("  %s: %s (%s)\n", l.Key, l.Path, l.DOI)
		}
		fmt.Printf("%s: %d attachments linked\n", f.Path(), len(links))
		return nil
	}

	out := make([]LinkReport, len(links))
	for i, l := range links {
		out[i] = LinkReport{Key: l.Key, DOI: l.DOI, Path: l.Path}
	}
	return outputJSON(LinkResult{
		Status:   "ok",
		Path:     f.Path(),
		Linked:   out,
		Findings: reportDiagnostics(diags),
	})
}
