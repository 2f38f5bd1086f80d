package field

import (
	"strconv"
	"strings"
)

var shortMonths = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

var longMonths = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// NormalizeMonth converts a month value to the three-letter BibTeX
// form. It accepts the short form, the full English name, or a number
// 1-12. The second return value is false when the value is not a
// recognizable month.
func NormalizeMonth(s string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(s))

	for _, m := range shortMonths {
		if v == m {
			return m, true
		}
	}
	for i, m := range longMonths {
		if v == m {
			return shortMonths[i], true
		}
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 12 {
		return shortMonths[n-1], true
	}
	return "", false
}
