package xplore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bibkit/bibkit/internal/bib"
)

// entryTypes maps the API's content types onto entry types.
var entryTypes = map[string]string{
	"Journals":     "article",
	"Conferences":  "inproceedings",
	"Early Access": "unpublished",
	"Standards":    "booklet",
	"Books":        "book",
	"Courses":      "misc",
}

// Entry converts one fetched article into a library entry. Field
// values the entry rejects are reported as warnings rather than
// failing the conversion; the entry is returned without them.
func (a Article) Entry() (*bib.Entry, []bib.Diagnostic) {
	entryType, ok := entryTypes[a.ContentType]
	if !ok {
		entryType = "misc"
	}
	e := bib.NewEntry(entryType, "")

	var diags []bib.Diagnostic
	set := func(name, value string) {
		if value == "" {
			return
		}
		if err := e.Set(name, value); err != nil {
			diags = append(diags, bib.Diagnostic{
				Severity: bib.SeverityWarning,
				Message:  fmt.Sprintf("dropping field %q: %v", name, err),
			})
		}
	}

	set("title", a.Title)
	set("author", a.authorField())
	switch entryType {
	case "article":
		set("journal", a.PublicationTitle)
	case "inproceedings":
		set("booktitle", a.PublicationTitle)
	default:
		if a.PublicationTitle != a.Title {
			set("booktitle", a.PublicationTitle)
		}
	}
	if a.PublicationYear != 0 {
		set("year", strconv.Itoa(a.PublicationYear))
	}
	set("pages", a.pageField())
	set("volume", a.Volume)
	if a.IssueNumber != 0 {
		set("number", strconv.Itoa(a.IssueNumber))
	}
	set("doi", a.DOI)
	set("isbn", a.ISBN)
	set("issn", a.ISSN)
	set("address", a.ConferenceLocation)
	set("publisher", a.Publisher)
	set("abstract", a.Abstract)
	set("url", a.HTMLURL)

	return e, diags
}

// authorField joins author full names in server order with the
// entry-field connective.
func (a Article) authorField() string {
	names := make([]string, 0, len(a.Authors.Authors))
	for _, au := range a.Authors.Authors {
		if au.FullName != "" {
			names = append(names, au.FullName)
		}
	}
	return strings.Join(names, " and ")
}

func (a Article) pageField() string {
	switch {
	case a.StartPage == "":
		return ""
	case a.EndPage == "" || a.EndPage == a.StartPage:
		return a.StartPage
	default:
		return a.StartPage + "--" + a.EndPage
	}
}
