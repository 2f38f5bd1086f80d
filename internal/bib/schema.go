package bib

// typeSchema declares the required and optional field names for one
// entry type. Fields outside both sets are retained but unvalidated.
type typeSchema struct {
	Required []string
	Optional []string
}

// schemas is the closed set of BibTeX entry types.
var schemas = map[string]typeSchema{
	"article": {
		Required: []string{"author", "title", "journal", "year", "volume"},
		Optional: []string{"number", "pages", "month", "doi"},
	},
	"book": {
		Required: []string{"author", "title", "publisher", "year"},
		Optional: []string{"editor", "volume", "number", "series", "address", "edition", "month"},
	},
	"booklet": {
		Required: []string{"title"},
		Optional: []string{"author", "howpublished", "address", "month", "year"},
	},
	"inbook": {
		Required: []string{"author", "title", "pages", "publisher", "year"},
		Optional: []string{"editor", "chapter", "volume", "number", "series", "type", "address", "edition", "month"},
	},
	"incollection": {
		Required: []string{"author", "title", "booktitle", "publisher", "year"},
		Optional: []string{"editor", "volume", "number", "series", "type", "chapter", "pages", "address", "edition", "month"},
	},
	"inproceedings": {
		Required: []string{"author", "title", "booktitle", "year"},
		Optional: []string{"editor", "volume", "number", "series", "pages", "address", "month", "organization", "publisher"},
	},
	"manual": {
		Required: []string{"title"},
		Optional: []string{"author", "organization", "address", "edition", "month", "year"},
	},
	"mastersthesis": {
		Required: []string{"author", "title", "school", "year"},
		Optional: []string{"type", "address", "month"},
	},
	"misc": {
		Required: []string{},
		Optional: []string{"author", "title", "howpublished", "month", "year"},
	},
	"phdthesis": {
		Required: []string{"author", "title", "school", "year"},
		Optional: []string{"type", "address", "month"},
	},
	"proceedings": {
		Required: []string{"title", "year"},
		Optional: []string{"editor", "volume", "number", "series", "address", "month", "publisher", "organization"},
	},
	"techreport": {
		Required: []string{"author", "title", "institution", "year"},
		Optional: []string{"type", "number", "address", "month"},
	},
	"unpublished": {
		Required: []string{"author", "title"},
		Optional: []string{"month", "year"},
	},
}

// KnownType reports whether entryType is one of the declared BibTeX
// entry types.
func KnownType(entryType string) bool {
	_, ok := schemas[entryType]
	return ok
}

// RequiredFields returns the required field names for the entry type
// in schema order. The bool is false for unknown types.
func RequiredFields(entryType string) ([]string, bool) {
	s, ok := schemas[entryType]
	if !ok {
		return nil, false
	}
	return s.Required, true
}

// OptionalFields returns the optional field names for the entry type
// in schema order. The bool is false for unknown types.
func OptionalFields(entryType string) ([]string, bool) {
	s, ok := schemas[entryType]
	if !ok {
		return nil, false
	}
	return s.Optional, true
}

// EntryTypes returns the known entry type tags. The order is not
// specified.
func EntryTypes() []string {
	types := make([]string, 0, len(schemas))
	for t := range schemas {
		types = append(types, t)
	}
	return types
}

// fieldAliases maps canonical BibTeX field names to the field names
// used by remote metadata APIs. Used when populating entries from
// search results.
var fieldAliases = map[string][]string{
	"address": {"conference_location"},
	"author":  {"authors"},
	"journal": {"publication_title"},
	"month":   {"publication_month", "conference_month"},
	"number":  {"issue", "is_number"},
	"year":    {"publication_year", "conference_year"},
}

// booktitleAliases apply instead of the journal aliases for
// proceedings-like entry types.
var booktitleAliases = []string{"publication_title"}

// ResolveField returns the name under which the canonical field is
// present on the entry: the canonical name itself, or one of its
// API aliases. The bool is false when neither is set.
func ResolveField(e *Entry, canonical string) (string, bool) {
	if e.Has(canonical) {
		return canonical, true
	}
	aliases := fieldAliases[canonical]
	if canonical == "booktitle" {
		aliases = booktitleAliases
	}
	for _, alias := range aliases {
		if e.Has(alias) {
			return alias, true
		}
	}
	return "", false
}
