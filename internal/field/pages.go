package field

import (
	"fmt"
	"regexp"
	"strconv"
)

var pageRangePattern = regexp.MustCompile(`^(\d+)\s*(?:-{1,2}\s*(\d+))?$`)

// PageRange is a page span from a pages field. A single page has
// Begin == End.
type PageRange struct {
	Begin int
	End   int
}

// ParsePageRange parses "N" or "N-M"/"N--M" forms.
func ParsePageRange(s string) (PageRange, error) {
	m := pageRangePattern.FindStringSubmatch(s)
	if m == nil {
		return PageRange{}, fmt.Errorf("invalid page range: %q", s)
	}
	begin, _ := strconv.Atoi(m[1])
	end := begin
	if m[2] != "" {
		end, _ = strconv.Atoi(m[2])
	}
	return PageRange{Begin: begin, End: end}, nil
}

// String renders the range in the canonical double-hyphen form.
func (p PageRange) String() string {
	if p.Begin == p.End {
		return strconv.Itoa(p.Begin)
	}
	return fmt.Sprintf("%d--%d", p.Begin, p.End)
}
