package xplore

import (
	"testing"

	"github.com/bibkit/bibkit/internal/bib"
)

func TestArticleEntry(t *testing.T) {
	a := Article{
		DOI:              "10.1109/5.771073",
		Title:            "Fading Channels",
		ContentType:      "Journals",
		PublicationTitle: "Proceedings of the IEEE",
		PublicationYear:  1998,
		StartPage:        "1927",
		EndPage:          "1986",
		Volume:           "86",
		IssueNumber:      10,
		ISSN:             "0018-9219",
		Publisher:        "IEEE",
		Authors: AuthorList{Authors: []Author{
			{FullName: "E. Biglieri", AuthorOrder: 1},
			{FullName: "J. Proakis", AuthorOrder: 2},
		}},
	}

	e, diags := a.Entry()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if e.Type != "article" {
		t.Errorf("Type = %q, want %q", e.Type, "article")
	}

	want := map[string]string{
		"title":   "Fading Channels",
		"author":  "E. Biglieri and J. Proakis",
		"journal": "Proceedings of the IEEE",
		"year":    "1998",
		"pages":   "1927--1986",
		"volume":  "86",
		"number":  "10",
		"doi":     "10.1109/5.771073",
		"issn":    "0018-9219",
	}
	for name, wantVal := range want {
		got, err := e.Get(name)
		if err != nil {
			t.Errorf("Get(%q): %v", name, err)
			continue
		}
		if got != wantVal {
			t.Errorf("Get(%q) = %q, want %q", name, got, wantVal)
		}
	}

	authors := e.Authors()
	if len(authors) != 2 {
		t.Fatalf("len(Authors()) = %d, want 2", len(authors))
	}
	if authors[0].Last != "Biglieri" {
		t.Errorf("first author Last = %q, want %q", authors[0].Last, "Biglieri")
	}
}

func TestArticleEntryTypes(t *testing.T) {
	cases := []struct {
		contentType string
		want        string
	}{
		{"Journals", "article"},
		{"Conferences", "inproceedings"},
		{"Early Access", "unpublished"},
		{"Standards", "booklet"},
		{"Books", "book"},
		{"Courses", "misc"},
		{"Something Else", "misc"},
	}
	for _, tc := range cases {
		t.Run(tc.contentType, func(t *testing.T) {
			a := Article{Title: "T", ContentType: tc.contentType}
			e, _ := a.Entry()
			if e.Type != tc.want {
				t.Errorf("Type = %q, want %q", e.Type, tc.want)
			}
		})
	}
}

func TestArticleEntryConference(t *testing.T) {
	a := Article{
		Title:              "A Result",
		ContentType:        "Conferences",
		PublicationTitle:   "Proc. Useful Conf.",
		ConferenceLocation: "Lisbon, Portugal",
		PublicationYear:    2021,
	}
	e, _ := a.Entry()
	if got, _ := e.Get("booktitle"); got != "Proc. Useful Conf." {
		t.Errorf("booktitle = %q", got)
	}
	if got, _ := e.Get("address"); got != "Lisbon, Portugal" {
		t.Errorf("address = %q", got)
	}
	if e.Has("journal") {
		t.Error("conference paper got a journal field")
	}
}

func TestArticleEntryDropsBadFields(t *testing.T) {
	a := Article{
		Title:       "T",
		ContentType: "Journals",
		DOI:         "not a doi",
	}
	e, diags := a.Entry()
	if e.Has("doi") {
		t.Error("invalid doi kept on entry")
	}
	if len(diags) != 1 {
		t.Fatalf("len(diags) = %d, want 1", len(diags))
	}
	if diags[0].Severity != bib.SeverityWarning {
		t.Errorf("severity = %v, want warning", diags[0].Severity)
	}
}

func TestArticlePageField(t *testing.T) {
	cases := []struct {
		start, end, want string
	}{
		{"10", "20", "10--20"},
		{"10", "10", "10"},
		{"10", "", "10"},
		{"", "20", ""},
	}
	for _, tc := range cases {
		a := Article{StartPage: tc.start, EndPage: tc.end}
		if got := a.pageField(); got != tc.want {
			t.Errorf("pageField(%q, %q) = %q, want %q", tc.start, tc.end, got, tc.want)
		}
	}
}
