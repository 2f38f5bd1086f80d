package main

import (
	"fmt"

	"github.com/bibkit/bibkit/internal/bibfile"
	"github.com/bibkit/bibkit/internal/citekey"
	"github.com/spf13/cobra"
)

var (
	keysForce  bool
	keysDryRun bool
)

func init() {
	keysCmd.Flags().BoolVar(&keysForce, "force", false, "Regenerate keys even for entries that already have one")
	keysCmd.Flags().BoolVar(&keysDryRun, "dry-run", false, "Report the changes without rewriting the file")
	rootCmd.AddCommand(keysCmd)
}

var keysCmd = &cobra.Command{
	Use:   "keys [file.bib]",
	Short: "Generate citation keys",
	Long: `Assign citation keys of the form <LastName><Year> to entries,
adding a, b, c suffixes when several entries would share a key.
Entries that already have a key keep it unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKeys,
}

// KeyChange is the JSON shape of one key assignment.
type KeyChange struct {
	Old string `json:"old,omitempty"`
	New string `json:"new"`
}

// KeysResult is the response for the keys command.
type KeysResult struct {
	Status  string      `json:"status"`
	Path    string      `json:"path"`
	Changes []KeyChange `json:"changes"`
}

func runKeys(cmd *cobra.Command, args []string) error {
	path := resolveBibPath(args)

	f := bibfile.New(path)
	if err := f.Read(); err != nil {
		exitWithError(ExitDataError, "reading %s: %v", f.Path(), err)
	}

	changes := citekey.Update(f.Library(), keysForce)

	if !keysDryRun && len(changes) > 0 {
		if err := f.Write(); err != nil {
			exitWithError(ExitError, "writing %s: %v", f.Path(), err)
		}
	}

	if humanOutput {
		for _, c := range changes {
			if c.Old == "" {
				fmt.Printf("  %s\n", c.New)
			} else {
				fmt.Printf("  %s -> %s\n", c.Old, c.New)
			}
		}
		fmt.Printf("%s: %d keys assigned\n", f.Path(), len(changes))
		return nil
	}

	out := make([]KeyChange, len(changes))
	for i, c := range changes {
		out[i] = KeyChange{Old: c.Old, New: c.New}
	}
	status := "updated"
	if keysDryRun {
		status = "dry-run"
	} else if len(changes) == 0 {
		status = "unchanged"
	}
	return outputJSON(KeysResult{Status: status, Path: f.Path(), Changes: out})
}
