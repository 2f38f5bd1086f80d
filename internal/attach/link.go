package attach

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bibkit/bibkit/internal/bib"
)

// Link records one attachment linked by LinkAll.
type Link struct {
	Key  string
	DOI  string
	Path string
}

// LinkAll matches the PDFs in pdfDir to entries by DOI and sets the
// file field of every matched entry that lacks one. Each PDF's DOI
// comes from its text; PDFs without a recognizable DOI and DOIs with
// no matching entry are skipped silently, unreadable PDFs are an
// advisory diagnostic. Paths are stored relative to bibDir.
func LinkAll(lib *bib.Library, pdfDir, bibDir string) ([]Link, []bib.Diagnostic, error) {
	return linkAll(lib, pdfDir, bibDir, ExtractDOI)
}

func linkAll(lib *bib.Library, pdfDir, bibDir string, extract func(string) (string, error)) ([]Link, []bib.Diagnostic, error) {
	byDOI := make(map[string]*bib.Entry)
	for _, e := range lib.Entries() {
		if e.Has("file") {
			continue
		}
		if doi, ok := e.Lookup("doi"); ok {
			byDOI[strings.ToLower(doi)] = e
		}
	}
	if len(byDOI) == 0 {
		return nil, nil, nil
	}

	dirEntries, err := os.ReadDir(pdfDir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", pdfDir, err)
	}
	// Deterministic pass order regardless of directory ordering.
	names := make([]string, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.IsDir() && strings.EqualFold(filepath.Ext(de.Name()), ".pdf") {
			names = append(names, de.Name())
		}
	}
	sort.Strings(names)

	var (
		links []Link
		diags []bib.Diagnostic
	)
	for _, name := range names {
		abs := filepath.Join(pdfDir, name)
		doi, err := extract(abs)
		if err != nil {
			diags = append(diags, bib.Diagnostic{
				Severity: bib.SeverityWarning,
				Message:  fmt.Sprintf("reading %s: %v", name, err),
			})
			continue
		}
		if doi == "" {
			continue
		}

		e, ok := byDOI[strings.ToLower(doi)]
		if !ok {
			continue
		}
		delete(byDOI, strings.ToLower(doi))

		rel := relToBib(abs, bibDir)
		if err := e.Set("file", Format([]Attachment{{Path: rel, MIMEType: "application/pdf"}})); err != nil {
			return links, diags, err
		}
		links = append(links, Link{Key: e.Key, DOI: doi, Path: rel})
	}
	return links, diags, nil
}
