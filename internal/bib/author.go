// Package bib defines the bibliographic data model: authors, entries,
// the per-type field schema, and the entry collection.
package bib

import (
	"strings"
	"unicode"
)

// Author is one structured person name.
type Author struct {
	Particle string `json:"particle,omitempty"` // "van", "de la", ...
	First    string `json:"first"`              // given name(s)
	Last     string `json:"last"`               // family name
	Suffix   string `json:"suffix,omitempty"`   // "Jr.", "III", ...
}

// AuthorList is an ordered list of authors. Order is significant: the
// first author drives citation-key generation.
type AuthorList []Author

// ParseAuthors parses a raw BibTeX author field. Authors are separated
// by the literal connective "and" (case-insensitive, surrounded by
// whitespace). The split respects brace nesting, so an "and" inside a
// protected group is never treated as a separator.
//
// Each segment is either the comma form "Last, First" (optionally
// "Last, Suffix, First") or the space form "First Particle Last",
// where a run of lowercase tokens before the family name is the
// particle.
func ParseAuthors(raw string) (AuthorList, error) {
	segments := splitConnective(raw)

	var list AuthorList
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		a, err := parseAuthor(seg)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, nil
}

// String renders the list in the canonical comma form, joined by
// " and ".
func (l AuthorList) String() string {
	parts := make([]string, len(l))
	for i, a := range l {
		parts[i] = a.String()
	}
	return strings.Join(parts, " and ")
}

// String renders one author in the canonical comma form:
// "Particle Last, Suffix, First".
func (a Author) String() string {
	var b strings.Builder
	if a.Particle != "" {
		b.WriteString(a.Particle)
		b.WriteByte(' ')
	}
	b.WriteString(a.Last)
	if a.Suffix != "" {
		b.WriteString(", ")
		b.WriteString(a.Suffix)
	}
	if a.First != "" {
		b.WriteString(", ")
		b.WriteString(a.First)
	}
	return b.String()
}

// splitConnective splits a raw author field on the " and " connective
// at brace depth zero.
func splitConnective(raw string) []string {
	var (
		segments []string
		depth    int
		start    int
	)

	lower := strings.ToLower(raw)
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ' ', '\t', '\n':
			if depth != 0 {
				continue
			}
			// Look for "and" as a whole word after this whitespace.
			j := i
			for j < len(raw) && isSpace(raw[j]) {
				j++
			}
			if strings.HasPrefix(lower[j:], "and") {
				k := j + len("and")
				if k < len(raw) && isSpace(raw[k]) {
					segments = append(segments, raw[start:i])
					for k < len(raw) && isSpace(raw[k]) {
						k++
					}
					start = k
					i = k - 1
				}
			}
		}
	}
	segments = append(segments, raw[start:])
	return segments
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// parseAuthor parses a single author segment.
func parseAuthor(seg string) (Author, error) {
	// A whole brace group is a corporate name: keep it verbatim as
	// the family name.
	if isBraceGroup(seg) {
		return Author{Last: seg}, nil
	}

	parts := strings.Split(seg, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 1:
		return parseSpaceForm(parts[0])
	case 2:
		particle, last := splitParticle(parts[0])
		if last == "" {
			return Author{}, &InvalidAuthorError{Raw: seg}
		}
		return Author{Particle: particle, First: parts[1], Last: last}, nil
	case 3:
		particle, last := splitParticle(parts[0])
		if last == "" {
			return Author{}, &InvalidAuthorError{Raw: seg}
		}
		return Author{Particle: particle, Suffix: parts[1], First: parts[2], Last: last}, nil
	default:
		return Author{}, &InvalidAuthorError{Raw: seg}
	}
}

// parseSpaceForm parses "First Particle Last": the final token is the
// family name, a run of lowercase tokens before it is the particle,
// and whatever precedes that is the given name.
func parseSpaceForm(seg string) (Author, error) {
	tokens := strings.Fields(seg)
	if len(tokens) == 0 {
		return Author{}, &InvalidAuthorError{Raw: seg}
	}
	if len(tokens) == 1 {
		return Author{Last: tokens[0]}, nil
	}

	last := tokens[len(tokens)-1]
	rest := tokens[:len(tokens)-1]

	// Peel the particle off the end of the remaining tokens.
	p := len(rest)
	for p > 0 && isLowercaseToken(rest[p-1]) {
		p--
	}

	return Author{
		First:    strings.Join(rest[:p], " "),
		Particle: strings.Join(rest[p:], " "),
		Last:     last,
	}, nil
}

// splitParticle splits a family-name part into particle and last name.
// Leading lowercase tokens form the particle.
func splitParticle(name string) (particle, last string) {
	tokens := strings.Fields(name)
	i := 0
	for i < len(tokens)-1 && isLowercaseToken(tokens[i]) {
		i++
	}
	return strings.Join(tokens[:i], " "), strings.Join(tokens[i:], " ")
}

// isBraceGroup reports whether s is one balanced brace group covering
// the whole string.
func isBraceGroup(s string) bool {
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 && i != len(s)-1 {
				return false
			}
		}
	}
	return depth == 0
}

// isLowercaseToken reports whether the token starts with a lowercase
// letter, marking it as a name particle.
func isLowercaseToken(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}
