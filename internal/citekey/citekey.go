// Package citekey derives citation keys for bibliography entries.
// Keys follow the <FirstAuthorLastName><Year> convention with
// lowercase letter suffixes resolving collisions deterministically.
package citekey

import (
	"strings"
	"unicode"

	"github.com/bibkit/bibkit/internal/bib"
)

// Change records one key assignment made by Update.
type Change struct {
	Entry *bib.Entry
	Old   string // empty for previously unkeyed entries
	New   string
}

// Generate derives the candidate key for an entry: the first author's
// family name with non-letter characters stripped, followed by the
// year when present. Entries without an author yield "anon" as the
// name stem.
func Generate(e *bib.Entry) string {
	stem := "anon"
	if authors := e.Authors(); len(authors) > 0 {
		if s := lettersOnly(authors[0].Last); s != "" {
			stem = s
		}
	}

	if name, ok := bib.ResolveField(e, "year"); ok {
		year, _ := e.Lookup(name)
		stem += strings.TrimSpace(year)
	}
	return stem
}

// Update assigns keys to every entry lacking one. With force, all
// keys are regenerated; without it, existing keys are left untouched
// so external references to them stay valid. When several entries
// share a candidate, each gets a successive lowercase suffix in
// collection order (Doe2020a, Doe2020b, ...). Update is idempotent
// for already-keyed entries unless forced.
func Update(lib *bib.Library, force bool) []Change {
	taken := make(map[string]bool)
	var targets []*bib.Entry
	for _, e := range lib.Entries() {
		if e.Key != "" && !force {
			taken[e.Key] = true
			continue
		}
		targets = append(targets, e)
	}

	// Group targets by candidate so colliding groups suffix from "a"
	// in collection order.
	candidates := make(map[string]int)
	for _, e := range targets {
		candidates[Generate(e)]++
	}

	var changes []Change
	assign := func(e *bib.Entry, key string) {
		old := e.Key
		e.Key = key
		taken[key] = true
		if old != key {
			changes = append(changes, Change{Entry: e, Old: old, New: key})
		}
	}

	next := make(map[string]int)
	for _, e := range targets {
		base := Generate(e)
		if candidates[base] == 1 && !taken[base] {
			assign(e, base)
			continue
		}
		for {
			key := base + suffix(next[base])
			next[base]++
			if !taken[key] {
				assign(e, key)
				break
			}
		}
	}
	return changes
}

// suffix converts an index to the lowercase letter sequence
// a, b, ..., z, aa, ab, ...
func suffix(n int) string {
	var b []byte
	for {
		b = append([]byte{byte('a' + n%26)}, b...)
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return string(b)
}

// lettersOnly keeps the letters of a surname, dropping spaces,
// hyphens, braces and any other punctuation.
func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
