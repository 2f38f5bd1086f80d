package main

import (
	"fmt"

	"github.com/bibkit/bibkit/internal/bibfile"
	"github.com/bibkit/bibkit/internal/config"
	"github.com/bibkit/bibkit/internal/index"
	"github.com/spf13/cobra"
)

var indexPath string

func init() {
	indexCmd.PersistentFlags().StringVar(&indexPath, "db", "", "Index database path (default from config)")
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index file.bib [file.bib...]",
	Short: "Rebuild the key/DOI index and scan for duplicates",
	Long: `Index the entries of one or more bib files into the SQLite
key/DOI index, then report keys and DOIs that appear more than
once across the indexed files. The index also backs the dedup
check of the search command.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndex,
}

// IndexResult is the response for the index command.
type IndexResult struct {
	Status   string             `json:"status"`
	DB       string             `json:"db"`
	Files    int                `json:"files"`
	Entries  int                `json:"entries"`
	Findings []DiagnosticReport `json:"findings,omitempty"`
}

func runIndex(cmd *cobra.Command, args []string) error {
	dbPath := indexPath
	if dbPath == "" {
		dbPath = config.GetIndexPath()
	}

	db, err := index.Open(dbPath)
	if err != nil {
		exitWithError(ExitConfigError, "opening index %s: %v", dbPath, err)
	}
	defer db.Close()

	if err := db.Clear(); err != nil {
		exitWithError(ExitError, "clearing index: %v", err)
	}

	for _, arg := range args {
		f := bibfile.New(arg)
		if err := f.Read(); err != nil {
			exitWithError(ExitDataError, "reading %s: %v", f.Path(), err)
		}
		if err := db.Add(f.Path(), f.Library()); err != nil {
			exitWithError(ExitError, "indexing %s: %v", f.Path(), err)
		}
	}

	entries, err := db.Count()
	if err != nil {
		exitWithError(ExitError, "counting entries: %v", err)
	}

	diags, err := db.Check()
	if err != nil {
		exitWithError(ExitError, "scanning for duplicates: %v", err)
	}

	if humanOutput {
		printDiagnosticsHuman(dbPath, diags)
		fmt.Printf("indexed %d entries from %d files into %s\n", entries, len(args), dbPath)
		return nil
	}
	status := "ok"
	if len(diags) > 0 {
		status = "duplicates"
	}
	return outputJSON(IndexResult{
		Status:   status,
		DB:       dbPath,
		Files:    len(args),
		Entries:  entries,
		Findings: reportDiagnostics(diags),
	})
}
