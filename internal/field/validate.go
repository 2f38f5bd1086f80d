// Package field provides validators and normalizers for bibliographic
// field values: ISBN and ISSN checksums, URL syntax, month names and
// page ranges.
package field

import (
	"net/url"
	"strings"
)

// ValidISBN reports whether s is a valid ISBN-10 or ISBN-13.
// Hyphens and spaces are ignored. The check digit is recomputed:
// mod-11 weighted sum for ISBN-10 (X counts as 10 in the last
// position), mod-10 alternating 1/3 sum for ISBN-13.
func ValidISBN(s string) bool {
	digits := stripSeparators(s)

	switch len(digits) {
	case 10:
		sum := 0
		for i, c := range digits {
			var d int
			switch {
			case c >= '0' && c <= '9':
				d = int(c - '0')
			case (c == 'X' || c == 'x') && i == 9:
				d = 10
			default:
				return false
			}
			sum += (10 - i) * d
		}
		return sum%11 == 0
	case 13:
		sum := 0
		for i, c := range digits {
			if c < '0' || c > '9' {
				return false
			}
			d := int(c - '0')
			if i%2 == 0 {
				sum += d
			} else {
				sum += 3 * d
			}
		}
		return sum%10 == 0
	default:
		return false
	}
}

// ValidISSN reports whether s is a valid ISSN: eight digits (the last
// may be X for a check value of 10), optionally hyphenated, with a
// mod-11 weighted checksum.
func ValidISSN(s string) bool {
	digits := stripSeparators(s)
	if len(digits) != 8 {
		return false
	}

	sum := 0
	for i, c := range digits {
		var d int
		switch {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case (c == 'X' || c == 'x') && i == 7:
			d = 10
		default:
			return false
		}
		sum += (8 - i) * d
	}
	return sum%11 == 0
}

// ValidURL reports whether s is a syntactically valid absolute URL
// with a scheme and a non-empty authority or path. No network access
// is performed.
func ValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != "" || u.Path != ""
}

// stripSeparators removes hyphens and spaces from an identifier.
func stripSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		if c == '-' || c == ' ' {
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
