// Package bibfile binds a bib.Library to a .bib file on disk and
// guarantees whole-file reads and writes: a tolerant parse on Read,
// an atomic replace on Write so an interrupted run never leaves a
// half-written bibliography.
package bibfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bibkit/bibkit/internal/bib"
	"github.com/bibkit/bibkit/internal/bibtex"
)

// File is a bibliography file. The zero value is not usable; create
// one with New.
type File struct {
	path    string
	library *bib.Library
	diags   []bib.Diagnostic
}

// New creates a File for the given path. The .bib extension is
// appended when missing. No I/O happens until Read or Write.
func New(path string) *File {
	if !strings.HasSuffix(path, ".bib") {
		path += ".bib"
	}
	return &File{path: path, library: bib.NewLibrary()}
}

// Path returns the bound file path.
func (f *File) Path() string {
	return f.path
}

// Dir returns the directory containing the file. Relative attachment
// paths resolve against it.
func (f *File) Dir() string {
	return filepath.Dir(f.path)
}

// Library returns the entry collection. It is empty until Read.
func (f *File) Library() *bib.Library {
	return f.library
}

// Diagnostics returns the diagnostics collected by the last Read.
func (f *File) Diagnostics() []bib.Diagnostic {
	return f.diags
}

// Read parses the whole file into the collection, replacing any
// previous content. Per-entry syntax errors are tolerated and
// available via Diagnostics; only I/O failures are returned.
func (f *File) Read() error {
	r, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.path, err)
	}
	defer r.Close()

	lib, diags, err := bibtex.Parse(r)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", f.path, err)
	}
	f.library = lib
	f.diags = diags
	return nil
}

// Write serializes the whole collection back to the file. The write
// goes to a temporary file in the same directory which is renamed
// over the target, so every exit path leaves either the old or the
// new content, never a truncated mix.
func (f *File) Write() (err error) {
	tmp, err := os.CreateTemp(f.Dir(), ".bibkit-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if err = bibtex.Write(tmp, f.library); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}

// Append adds an entry to the in-memory collection. Write persists
// it.
func (f *File) Append(e *bib.Entry) {
	f.library.Append(e)
}
