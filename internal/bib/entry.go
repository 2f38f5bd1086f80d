package bib

import (
	"strings"

	"github.com/bibkit/bibkit/internal/field"
)

// Entry is one bibliographic record: a type tag, a citation key, and
// named fields. Field assignment runs the matching validator for
// identifier-like fields; other fields store the raw string.
// Insertion order of fields is preserved.
type Entry struct {
	Type string // entry type tag, lowercase ("article", "book", ...)
	Key  string // citation key, case-sensitive

	fields  map[string]string
	order   []string   // field names in insertion order
	authors AuthorList // parsed from the author field on assignment
}

// NewEntry creates an empty entry of the given type. The type tag is
// lowercased; it need not be one of the known types.
func NewEntry(entryType, key string) *Entry {
	return &Entry{
		Type:   strings.ToLower(entryType),
		Key:    key,
		fields: make(map[string]string),
	}
}

// Get returns the value of the named field, or a MissingFieldError
// when it is absent. Callers that treat absence as normal should use
// Lookup instead.
func (e *Entry) Get(name string) (string, error) {
	name = strings.ToLower(name)
	v, ok := e.fields[name]
	if !ok {
		return "", &MissingFieldError{Key: e.Key, Field: name}
	}
	return v, nil
}

// Lookup returns the value of the named field and whether it is set.
func (e *Entry) Lookup(name string) (string, bool) {
	v, ok := e.fields[strings.ToLower(name)]
	return v, ok
}

// Has reports whether the named field is set.
func (e *Entry) Has(name string) bool {
	_, ok := e.fields[strings.ToLower(name)]
	return ok
}

// Set assigns a field value. Field names are case-folded to lowercase.
// For the validated kinds (isbn, issn, url, doi, month, pages) the
// matching validator runs first; month and pages are stored in their
// canonical forms (three-letter month, double-hyphen page range). For
// author the value is parsed into the author list. On validation
// failure the entry is left unchanged and an InvalidFieldError is
// returned.
func (e *Entry) Set(name, value string) error {
	name = strings.ToLower(strings.TrimSpace(name))

	switch name {
	case "isbn":
		if !field.ValidISBN(value) {
			return &InvalidFieldError{Field: name, Value: value}
		}
	case "issn":
		if !field.ValidISSN(value) {
			return &InvalidFieldError{Field: name, Value: value}
		}
	case "url":
		if !field.ValidURL(value) {
			return &InvalidFieldError{Field: name, Value: value}
		}
	case "doi":
		if _, err := field.ParseDOI(value); err != nil {
			return &InvalidFieldError{Field: name, Value: value, Err: err}
		}
	case "month":
		m, ok := field.NormalizeMonth(value)
		if !ok {
			return &InvalidFieldError{Field: name, Value: value}
		}
		value = m
	case "pages":
		p, err := field.ParsePageRange(value)
		if err != nil {
			return &InvalidFieldError{Field: name, Value: value, Err: err}
		}
		value = p.String()
	case "author":
		authors, err := ParseAuthors(value)
		if err != nil {
			return &InvalidFieldError{Field: name, Value: value, Err: err}
		}
		e.authors = authors
	}

	if _, exists := e.fields[name]; !exists {
		e.order = append(e.order, name)
	}
	e.fields[name] = value
	return nil
}

// Delete removes the named field if present.
func (e *Entry) Delete(name string) {
	name = strings.ToLower(name)
	if _, ok := e.fields[name]; !ok {
		return
	}
	delete(e.fields, name)
	for i, n := range e.order {
		if n == name {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	if name == "author" {
		e.authors = nil
	}
}

// Authors returns the parsed author list. It is empty until an author
// field has been assigned.
func (e *Entry) Authors() AuthorList {
	return e.authors
}

// Fields returns the field names in insertion order.
func (e *Entry) Fields() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Len returns the number of fields set on the entry.
func (e *Entry) Len() int {
	return len(e.fields)
}

// Validate checks the entry against its type schema and returns
// advisory diagnostics for missing required fields. Entries with an
// unknown type get a single diagnostic. The entry is never rejected:
// the model favors permissive reads with loud diagnostics.
func (e *Entry) Validate() []Diagnostic {
	var diags []Diagnostic

	required, ok := RequiredFields(e.Type)
	if !ok {
		return []Diagnostic{{
			Severity: SeverityWarning,
			Message:  "unknown entry type " + quote(e.Type) + " for entry " + quote(e.Key),
		}}
	}

	for _, name := range required {
		if !e.Has(name) {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Message:  "entry " + quote(e.Key) + " is missing required field " + quote(name),
			})
		}
	}
	return diags
}

// quote quotes a name for a diagnostic message.
func quote(s string) string {
	return `"` + s + `"`
}
