package bibtex

import (
	"fmt"
	"io"
	"strings"

	"github.com/bibkit/bibkit/internal/bib"
)

// Format serializes the whole library in canonical form: entries in
// collection order, separated by one blank line.
func Format(lib *bib.Library) string {
	var b strings.Builder
	for i, e := range lib.Entries() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(FormatEntry(e))
	}
	return b.String()
}

// Write serializes the library to w.
func Write(w io.Writer, lib *bib.Library) error {
	if _, err := io.WriteString(w, Format(lib)); err != nil {
		return fmt.Errorf("writing bibtex: %w", err)
	}
	return nil
}

// FormatEntry serializes one entry. Fields are emitted in canonical
// order: required fields in schema order, then optional fields in
// schema order, then unrecognized fields in insertion order. Every
// value is wrapped in braces on write, so protected groups stay
// protected regardless of the stored form.
func FormatEntry(e *bib.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", e.Type, e.Key)

	done := make(map[string]bool)
	writeField := func(name string) {
		if done[name] {
			return
		}
		if v, ok := e.Lookup(name); ok {
			fmt.Fprintf(&b, "  %s = {%s},\n", name, v)
			done[name] = true
		}
	}

	if required, ok := bib.RequiredFields(e.Type); ok {
		for _, name := range required {
			writeField(name)
		}
	}
	if optional, ok := bib.OptionalFields(e.Type); ok {
		for _, name := range optional {
			writeField(name)
		}
	}
	for _, name := range e.Fields() {
		writeField(name)
	}

	b.WriteString("}\n")
	return b.String()
}
