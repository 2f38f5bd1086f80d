package attach

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bibkit/bibkit/internal/bib"
)

// Rename records one attachment move performed by RenameAll.
type Rename struct {
	Key     string
	OldPath string
	NewPath string
}

// RenameAll renames the first attachment of every keyed entry to
// <key><ext> in its current directory and rewrites the file field.
// Entries without a file field are skipped; a missing file on disk is
// an advisory diagnostic, not a failure. Keys must be stable for the
// run: callers regenerate keys before, never during, a rename pass.
func RenameAll(lib *bib.Library, bibDir string) ([]Rename, []bib.Diagnostic, error) {
	var (
		renames []Rename
		diags   []bib.Diagnostic
	)

	for _, e := range lib.Entries() {
		value, ok := e.Lookup("file")
		if !ok || e.Key == "" {
			continue
		}

		attachments, err := Parse(value)
		if err != nil {
			diags = append(diags, bib.Diagnostic{
				Severity: bib.SeverityWarning,
				Message:  fmt.Sprintf("entry %q: %v", e.Key, err),
			})
			continue
		}
		if len(attachments) == 0 {
			continue
		}

		a := attachments[0]
		oldRel := relToBib(a.Path, bibDir)
		ext := filepath.Ext(oldRel)
		if ext == "" {
			ext = ".pdf"
		}
		newRel := filepath.Join(filepath.Dir(oldRel), e.Key+ext)
		if newRel == oldRel {
			continue
		}

		oldAbs := filepath.Join(bibDir, oldRel)
		newAbs := filepath.Join(bibDir, newRel)
		if err := os.Rename(oldAbs, newAbs); err != nil {
			if os.IsNotExist(err) {
				diags = append(diags, bib.Diagnostic{
					Severity: bib.SeverityWarning,
					Message:  fmt.Sprintf("entry %q: attachment %s not found", e.Key, oldRel),
				})
				continue
			}
			return renames, diags, fmt.Errorf("renaming %s: %w", oldAbs, err)
		}

		attachments[0].Path = newRel
		if err := e.Set("file", Format(attachments)); err != nil {
			return renames, diags, err
		}
		renames = append(renames, Rename{Key: e.Key, OldPath: oldRel, NewPath: newRel})
	}
	return renames, diags, nil
}

// relToBib converts a stored attachment path to a path relative to
// the bibliography directory, matching how absolute paths are
// normalized on write.
func relToBib(path, bibDir string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(bibDir, path)
	if err != nil {
		return path
	}
	return rel
}
