package bibtex

import (
	"reflect"
	"strings"
	"testing"

	"github.com/bibkit/bibkit/internal/bib"
)

func TestFormatEntryFieldOrder(t *testing.T) {
	e := bib.NewEntry("article", "combes2016")
	// Set in scrambled order, plus an unknown field.
	for _, f := range [][2]string{
		{"custom", "extra"},
		{"year", "2016"},
		{"doi", "10.1109/ACC.2016.7525045"},
		{"title", "Adding virtual measurements by signal injection"},
		{"author", "Combes, P."},
		{"journal", "American Control Conference"},
		{"volume", "3"},
	} {
		if err := e.Set(f[0], f[1]); err != nil {
			t.Fatalf("Set(%q): %v", f[0], err)
		}
	}

	got := FormatEntry(e)

	if !strings.HasPrefix(got, "@article{combes2016,\n") {
		t.Errorf("header = %q", got)
	}

	// Required fields first in schema order, then optional, then
	// unknown fields last.
	order := []string{"author", "title", "journal", "year", "volume", "doi", "custom"}
	pos := -1
	for _, name := range order {
		idx := strings.Index(got, "  "+name+" = {")
		if idx < 0 {
			t.Fatalf("field %q missing from output:\n%s", name, got)
		}
		if idx < pos {
			t.Errorf("field %q out of canonical order:\n%s", name, got)
		}
		pos = idx
	}

	if !strings.HasSuffix(got, "}\n") {
		t.Errorf("entry must close with }, got %q", got)
	}
}

func TestFormatSeparatesEntries(t *testing.T) {
	lib := bib.NewLibrary()
	a := bib.NewEntry("misc", "a")
	a.Set("note", "x")
	b := bib.NewEntry("misc", "b")
	b.Set("note", "y")
	lib.Append(a)
	lib.Append(b)

	got := Format(lib)
	if !strings.Contains(got, "}\n\n@misc{b,") {
		t.Errorf("entries must be separated by one blank line:\n%s", got)
	}
	if strings.Index(got, "@misc{a,") > strings.Index(got, "@misc{b,") {
		t.Error("serialization must not reorder entries")
	}
}

func TestRoundTrip(t *testing.T) {
	input := `@article{jebai2014, author = "Jebai, A. K. and Combes, P.", title = {Energy-based modeling of {PMSM} motors}, journal = {53rd IEEE Conference on Decision and Control}, year = {2014}, volume = {1}, pages = {6009--6016}, custom_field = {kept {As Is}}}

@inproceedings{combes2016, author = {Combes, P.}, title = {Adding virtual measurements}, booktitle = {2016 American Control Conference}, year = {2016}}
`
	first, diags := ParseString(input)
	if len(diags) != 0 {
		t.Fatalf("parse diagnostics: %v", diags)
	}

	second, diags := ParseString(Format(first))
	if len(diags) != 0 {
		t.Fatalf("reparse diagnostics: %v", diags)
	}

	if first.Len() != second.Len() {
		t.Fatalf("entry count changed: %d -> %d", first.Len(), second.Len())
	}

	for i := range first.Entries() {
		a, b := first.Entries()[i], second.Entries()[i]
		if a.Type != b.Type || a.Key != b.Key {
			t.Errorf("entry %d identity changed: %s/%s -> %s/%s", i, a.Type, a.Key, b.Type, b.Key)
		}
		for _, name := range a.Fields() {
			av, _ := a.Lookup(name)
			bv, ok := b.Lookup(name)
			if !ok {
				t.Errorf("entry %q lost field %q on round trip", a.Key, name)
				continue
			}
			if av != bv {
				t.Errorf("entry %q field %q changed: %q -> %q", a.Key, name, av, bv)
			}
		}
		if !reflect.DeepEqual(a.Authors(), b.Authors()) {
			t.Errorf("entry %q authors changed: %+v -> %+v", a.Key, a.Authors(), b.Authors())
		}
	}
}

func TestWriteToWriter(t *testing.T) {
	lib := bib.NewLibrary()
	e := bib.NewEntry("misc", "k")
	e.Set("note", "n")
	lib.Append(e)

	var sb strings.Builder
	if err := Write(&sb, lib); err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}
	if sb.String() != Format(lib) {
		t.Error("Write() output differs from Format()")
	}
}
