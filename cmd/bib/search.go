package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bibkit/bibkit/internal/bib"
	"github.com/bibkit/bibkit/internal/bibfile"
	"github.com/bibkit/bibkit/internal/bibtex"
	"github.com/bibkit/bibkit/internal/citekey"
	"github.com/bibkit/bibkit/internal/config"
	"github.com/bibkit/bibkit/internal/index"
	"github.com/bibkit/bibkit/internal/xplore"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	searchQuery    string
	searchAuthor   string
	searchTitle    string
	searchYear     string
	searchType     string
	searchLimit    int
	searchPages    int
	searchAppend   string
	searchAllowDup bool
)

func init() {
	// Load .env file if present (for XPLORE_API_KEY)
	_ = godotenv.Load()

	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "Free-text query")
	searchCmd.Flags().StringVar(&searchAuthor, "author", "", "Author name")
	searchCmd.Flags().StringVar(&searchTitle, "title", "", "Words from the article title")
	searchCmd.Flags().StringVar(&searchYear, "year", "", "Publication year")
	searchCmd.Flags().StringVar(&searchType, "type", "", "Content type filter (Journals, Conferences, ...)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", xplore.DefaultPageSize, "Records per page")
	searchCmd.Flags().IntVar(&searchPages, "pages", 1, "Number of pages to fetch")
	searchCmd.Flags().StringVar(&searchAppend, "append", "", "Append results to this bib file")
	searchCmd.Flags().BoolVar(&searchAllowDup, "allow-duplicates", false, "Append results whose DOI is already indexed")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the remote metadata API",
	Long: `Search the IEEE Xplore metadata API and print the matching
records as BibTeX entries. With --append the entries are given
citation keys and appended to a bib file; records whose DOI is
already in the index are skipped unless --allow-duplicates is
given.

The API key is read from XPLORE_API_KEY (a .env file works) or
from the global config.`,
	RunE: runSearch,
}

// SearchResult is the response for the search command.
type SearchResult struct {
	Status   string             `json:"status"`
	Total    int                `json:"total"`
	Fetched  int                `json:"fetched"`
	Appended int                `json:"appended,omitempty"`
	Skipped  int                `json:"skipped,omitempty"`
	BibTeX   string             `json:"bibtex"`
	Findings []DiagnosticReport `json:"findings,omitempty"`
}

func buildQuery(c *xplore.Client) *xplore.Query {
	q := c.Query()
	set := func(err error) {
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}
	if searchQuery != "" {
		set(q.Set("querytext", searchQuery))
	}
	if searchAuthor != "" {
		set(q.Set("author", searchAuthor))
	}
	if searchTitle != "" {
		set(q.Set("article_title", searchTitle))
	}
	if searchYear != "" {
		set(q.Set("publication_year", searchYear))
	}
	if searchType != "" {
		set(q.FilterBy("content_type", searchType))
	}
	set(q.Limit(searchLimit))
	return q
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchQuery == "" && searchAuthor == "" && searchTitle == "" && searchYear == "" {
		exitWithError(ExitError, "at least one of --query, --author, --title, --year is required")
	}

	var opts []xplore.ClientOption
	if os.Getenv("XPLORE_API_KEY") == "" {
		if key := config.GetXploreAPIKey(); key != "" {
			opts = append(opts, xplore.WithAPIKey(key))
		}
	}
	client := xplore.NewClient(opts...)

	ctx := context.Background()
	rs, err := buildQuery(client).Send(ctx)
	if err != nil {
		exitSearchError(err)
	}

	for page := 1; page < searchPages; page++ {
		if err := rs.FetchMore(ctx); err != nil {
			if errors.Is(err, xplore.ErrEndOfResults) {
				break
			}
			exitSearchError(err)
		}
	}

	if rs.Total() == 0 {
		exitWithError(ExitSearchNoResults, "no records matched")
	}

	lib, diags := resultLibrary(rs)

	result := SearchResult{
		Status:  "ok",
		Total:   rs.Total(),
		Fetched: rs.Len(),
	}

	if searchAppend != "" {
		appended, skipped := appendResults(searchAppend, lib)
		result.Appended = appended
		result.Skipped = skipped
		result.Status = "appended"
	}
	// Entries not keyed by the append (or all of them when only
	// printing) get display keys now.
	citekey.Update(lib, false)
	result.BibTeX = bibtex.Format(lib)
	result.Findings = reportDiagnostics(diags)

	if humanOutput {
		fmt.Printf("%d of %d records fetched\n\n", result.Fetched, result.Total)
		fmt.Print(result.BibTeX)
		if searchAppend != "" {
			fmt.Printf("\nappended %d entries to %s (%d skipped)\n",
				result.Appended, searchAppend, result.Skipped)
		}
		return nil
	}
	return outputJSON(result)
}

// resultLibrary converts fetched articles into a library. The
// entries are left unkeyed so key assignment can run over whichever
// library they finally land in.
func resultLibrary(rs *xplore.ResultSet) (*bib.Library, []bib.Diagnostic) {
	lib := bib.NewLibrary()
	var diags []bib.Diagnostic
	for _, a := range rs.Articles() {
		e, ds := a.Entry()
		diags = append(diags, ds...)
		lib.Append(e)
	}
	return lib, diags
}

// mergeEntries appends fetched entries to dst, skipping entries whose
// DOI hasDOI reports as known unless allowDup is set, then assigns
// citation keys over the merged library. The fetched entries must be
// unkeyed on entry: existing keys in dst stay fixed, and the merged
// key assignment gives appended entries suffixes past them, so an
// appended Doe2020 lands as Doe2020a next to an existing Doe2020.
func mergeEntries(dst *bib.Library, fetched []*bib.Entry, hasDOI func(string) (bool, error), allowDup bool) (appended, skipped int, err error) {
	for _, e := range fetched {
		if !allowDup {
			if doi, ok := e.Lookup("doi"); ok {
				known, err := hasDOI(doi)
				if err != nil {
					return appended, skipped, err
				}
				if known {
					skipped++
					continue
				}
			}
		}
		dst.Append(e)
		appended++
	}
	citekey.Update(dst, false)
	return appended, skipped, nil
}

// appendResults appends the library's entries to a bib file, skipping
// records whose DOI is already in the index.
func appendResults(path string, lib *bib.Library) (appended, skipped int) {
	db, err := index.Open(config.GetIndexPath())
	if err != nil {
		exitWithError(ExitConfigError, "opening index: %v", err)
	}
	defer db.Close()

	// A missing target starts a fresh library.
	f := bibfile.New(path)
	if err := f.Read(); err != nil && !errors.Is(err, os.ErrNotExist) {
		exitWithError(ExitDataError, "reading %s: %v", f.Path(), err)
	}

	appended, skipped, err = mergeEntries(f.Library(), lib.Entries(), db.HasDOI, searchAllowDup)
	if err != nil {
		exitWithError(ExitError, "querying index: %v", err)
	}

	if appended > 0 {
		if err := f.Write(); err != nil {
			exitWithError(ExitError, "writing %s: %v", f.Path(), err)
		}
		if err := db.Add(f.Path(), f.Library()); err != nil {
			exitWithError(ExitError, "updating index: %v", err)
		}
	}
	return appended, skipped
}

// exitSearchError maps client errors onto search exit codes.
func exitSearchError(err error) {
	switch {
	case errors.Is(err, xplore.ErrAuth):
		exitWithError(ExitSearchAuthError, "authentication failed: set XPLORE_API_KEY or xplore_api_key in %s", config.GlobalConfigPath())
	case errors.Is(err, xplore.ErrRateLimited):
		exitWithError(ExitSearchAPIError, "rate limited by the API: %v", err)
	default:
		exitWithError(ExitSearchAPIError, "search failed: %v", err)
	}
}
