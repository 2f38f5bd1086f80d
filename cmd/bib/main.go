// Package main provides the bib CLI entry point.
package main

import (
	"os"

	"github.com/bibkit/bibkit/internal/config"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bib",
	Short: "BibTeX library manager",
	Long: `bib manages BibTeX bibliography files.

It parses tolerantly, reports problems as diagnostics instead of
aborting, rewrites files in a canonical form, generates citation
keys, links PDF attachments, and imports entries from a remote
metadata search API. All commands output JSON by default;
use --human for human-readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// resolveBibPath picks the bib file to operate on: the argument if
// given, otherwise the configured default.
func resolveBibPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if path := config.GetDefaultBib(); path != "" {
		return path
	}
	exitWithError(ExitConfigError, "no bib file given and no default_bib configured in %s", config.GlobalConfigPath())
	return ""
}
