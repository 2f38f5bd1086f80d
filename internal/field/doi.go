package field

import (
	"fmt"
	"regexp"
	"strings"
)

// doiPattern matches the DOI prefix/suffix form: a "10." registrant
// code, a slash, and a non-empty suffix.
var doiPattern = regexp.MustCompile(`^10\.\d+/.+$`)

// DOI is a validated Digital Object Identifier.
type DOI struct {
	Prefix string // registrant code, e.g. "10.1109"
	Suffix string // publisher-assigned suffix
}

// ParseDOI validates s against the DOI syntax and returns it split
// into prefix and suffix. Common URL and "doi:" prefixes are stripped
// before validation. No resolution is attempted.
func ParseDOI(s string) (DOI, error) {
	s = normalizeDOI(s)
	if !doiPattern.MatchString(s) {
		return DOI{}, fmt.Errorf("invalid DOI: %q", s)
	}
	slash := strings.Index(s, "/")
	return DOI{Prefix: s[:slash], Suffix: s[slash+1:]}, nil
}

// String returns the canonical prefix/suffix form.
func (d DOI) String() string {
	return d.Prefix + "/" + d.Suffix
}

// normalizeDOI strips resolver URL prefixes and the doi: scheme so
// that values copied from browsers compare equal to bare DOIs.
func normalizeDOI(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "https://doi.org/")
	s = strings.TrimPrefix(s, "http://doi.org/")
	s = strings.TrimPrefix(s, "doi.org/")
	s = strings.TrimPrefix(s, "DOI:")
	s = strings.TrimPrefix(s, "doi:")
	return s
}
