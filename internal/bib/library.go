package bib

// Library is an ordered collection of entries. Insertion order is
// document order and is preserved through serialization. Keys are
// expected to be unique, but duplicates are a diagnostic, not a
// failure.
type Library struct {
	entries []*Entry
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{}
}

// Append adds an entry at the end of the library. The library takes
// ownership of the entry.
func (l *Library) Append(e *Entry) {
	l.entries = append(l.entries, e)
}

// Entries returns the entries in document order. The slice is shared;
// callers must not reorder it.
func (l *Library) Entries() []*Entry {
	return l.entries
}

// Len returns the number of entries.
func (l *Library) Len() int {
	return len(l.entries)
}

// Last returns the most recently appended entry, or nil for an empty
// library.
func (l *Library) Last() *Entry {
	if len(l.entries) == 0 {
		return nil
	}
	return l.entries[len(l.entries)-1]
}

// Remove deletes the entry at index i.
func (l *Library) Remove(i int) {
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
}

// ByKey returns the first entry with the given key, or nil.
func (l *Library) ByKey(key string) *Entry {
	for _, e := range l.entries {
		if e.Key == key {
			return e
		}
	}
	return nil
}

// Keys returns the set of keys currently in use. Unkeyed entries are
// skipped.
func (l *Library) Keys() map[string]bool {
	keys := make(map[string]bool, len(l.entries))
	for _, e := range l.entries {
		if e.Key != "" {
			keys[e.Key] = true
		}
	}
	return keys
}

// Check runs the consistency scan: duplicate keys and per-entry
// schema validation. All findings are advisory.
func (l *Library) Check() []Diagnostic {
	var diags []Diagnostic

	seen := make(map[string]bool, len(l.entries))
	for _, e := range l.entries {
		if e.Key != "" {
			if seen[e.Key] {
				diags = append(diags, Diagnostic{
					Severity: SeverityWarning,
					Message:  "duplicate key " + quote(e.Key),
				})
			}
			seen[e.Key] = true
		}
		diags = append(diags, e.Validate()...)
	}
	return diags
}
