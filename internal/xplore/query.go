package xplore

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/bibkit/bibkit/internal/field"
)

// paramKind classifies a query parameter.
type paramKind int

const (
	paramSearch paramKind = iota
	paramFilter
	paramPage
	paramSort
)

// paramSpec declares one accepted parameter and its value check.
type paramSpec struct {
	Kind     paramKind
	Validate func(string) string // returns a reason, "" when valid
}

func intValue(v string) string {
	if _, err := strconv.Atoi(v); err != nil {
		return "must be an integer"
	}
	return ""
}

// params is the accepted parameter table.
var params = map[string]paramSpec{
	// search
	"abstract":          {Kind: paramSearch},
	"article_title":     {Kind: paramSearch},
	"author":            {Kind: paramSearch},
	"affiliation":       {Kind: paramSearch},
	"index_terms":       {Kind: paramSearch},
	"meta_data":         {Kind: paramSearch},
	"publication_title": {Kind: paramSearch},
	"querytext":         {Kind: paramSearch},
	"article_number":    {Kind: paramSearch, Validate: intValue},
	"publication_year":  {Kind: paramSearch, Validate: intValue},
	"doi": {Kind: paramSearch, Validate: func(v string) string {
		if _, err := field.ParseDOI(v); err != nil {
			return "not a valid DOI"
		}
		return ""
	}},
	"isbn": {Kind: paramSearch, Validate: func(v string) string {
		if !field.ValidISBN(v) {
			return "not a valid ISBN"
		}
		return ""
	}},
	"issn": {Kind: paramSearch, Validate: func(v string) string {
		if !field.ValidISSN(v) {
			return "not a valid ISSN"
		}
		return ""
	}},

	// filter
	"content_type":       {Kind: paramFilter, Validate: contentTypeValue},
	"publisher":          {Kind: paramFilter},
	"open_access":        {Kind: paramFilter},
	"publication_number": {Kind: paramFilter, Validate: intValue},
	"start_year":         {Kind: paramFilter, Validate: intValue},
	"end_year":           {Kind: paramFilter, Validate: intValue},

	// page
	"max_records":  {Kind: paramPage, Validate: intValue},
	"start_record": {Kind: paramPage, Validate: intValue},

	// sort
	"sort_field": {Kind: paramSort, Validate: sortFieldValue},
	"sort_order": {Kind: paramSort, Validate: sortOrderValue},
}

// contentTypes the API understands.
var contentTypes = []string{
	"Journals", "Conferences", "Early Access", "Standards", "Books", "Courses",
}

func contentTypeValue(v string) string {
	for _, t := range contentTypes {
		if v == t {
			return ""
		}
	}
	return "unknown content type"
}

var sortFields = []string{
	"article_number", "article_title", "author", "publication_title", "publication_year",
}

func sortFieldValue(v string) string {
	for _, f := range sortFields {
		if v == f {
			return ""
		}
	}
	return "unknown sort field"
}

func sortOrderValue(v string) string {
	if v == "asc" || v == "desc" {
		return ""
	}
	return `must be "asc" or "desc"`
}

// Query accumulates validated parameters for one search. Build it
// with Client.Query, refine with Set, FilterBy, SortBy and Limit,
// then Send it.
type Query struct {
	client *Client
	values url.Values
}

// Query starts an empty query against the client.
func (c *Client) Query() *Query {
	return &Query{client: c, values: url.Values{}}
}

// Set assigns a search parameter. The name must be a declared search
// parameter and the value must pass its check.
func (q *Query) Set(name, value string) error {
	return q.set(name, value, paramSearch)
}

// FilterBy assigns a filtering parameter. Setting start_year above
// end_year (or vice versa) is rejected.
func (q *Query) FilterBy(name, value string) error {
	if err := q.set(name, value, paramFilter); err != nil {
		return err
	}
	start, end := q.values.Get("start_year"), q.values.Get("end_year")
	if start != "" && end != "" {
		s, _ := strconv.Atoi(start)
		e, _ := strconv.Atoi(end)
		if s > e {
			q.values.Del(name)
			return &ParamError{Name: name, Value: value,
				Reason: "start_year must not exceed end_year"}
		}
	}
	return nil
}

// SortBy sets the result ordering. Order defaults to ascending when
// empty.
func (q *Query) SortBy(fieldName, order string) error {
	if order == "" {
		order = "asc"
	}
	if err := q.set("sort_field", fieldName, paramSort); err != nil {
		return err
	}
	if err := q.set("sort_order", strings.ToLower(order), paramSort); err != nil {
		q.values.Del("sort_field")
		return err
	}
	return nil
}

// Limit caps the number of records fetched per page.
func (q *Query) Limit(records int) error {
	if records < 1 || records > MaxPageSize {
		return &ParamError{Name: "max_records", Value: strconv.Itoa(records),
			Reason: "must be between 1 and " + strconv.Itoa(MaxPageSize)}
	}
	q.values.Set("max_records", strconv.Itoa(records))
	return nil
}

func (q *Query) set(name, value string, kind paramKind) error {
	spec, ok := params[name]
	if !ok {
		return &ParamError{Name: name, Value: value, Reason: "unknown parameter"}
	}
	if spec.Kind != kind {
		return &ParamError{Name: name, Value: value, Reason: "wrong parameter kind"}
	}
	if spec.Validate != nil {
		if reason := spec.Validate(value); reason != "" {
			return &ParamError{Name: name, Value: value, Reason: reason}
		}
	}
	q.values.Set(name, value)
	return nil
}

// pageSize returns the effective page size for pagination.
func (q *Query) pageSize() int {
	if v := q.values.Get("max_records"); v != "" {
		n, _ := strconv.Atoi(v)
		return n
	}
	return DefaultPageSize
}

// Send runs the query and returns the first page of results.
func (q *Query) Send(ctx context.Context) (*ResultSet, error) {
	values := cloneValues(q.values)
	values.Set("start_record", "1")
	if values.Get("max_records") == "" {
		values.Set("max_records", strconv.Itoa(DefaultPageSize))
	}

	page, err := q.client.fetch(ctx, values)
	if err != nil {
		return nil, err
	}
	return &ResultSet{
		client: q.client,
		values: values,
		total:  page.TotalRecords,
		items:  page.Articles,
	}, nil
}

func cloneValues(v url.Values) url.Values {
	out := url.Values{}
	for k, vs := range v {
		for _, s := range vs {
			out.Add(k, s)
		}
	}
	return out
}
