package xplore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

// fakeAPI serves pages from a fixed article list, honoring
// start_record and max_records.
func fakeAPI(t *testing.T, articles []Article) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start, _ := strconv.Atoi(r.URL.Query().Get("start_record"))
		max, _ := strconv.Atoi(r.URL.Query().Get("max_records"))
		if start < 1 {
			start = 1
		}
		if max < 1 {
			max = DefaultPageSize
		}
		lo := start - 1
		hi := lo + max
		if lo > len(articles) {
			lo = len(articles)
		}
		if hi > len(articles) {
			hi = len(articles)
		}
		page := apiResponse{
			TotalRecords:  len(articles),
			TotalSearched: len(articles),
			Articles:      articles[lo:hi],
		}
		json.NewEncoder(w).Encode(page)
	}))
}

func numberedArticles(n int) []Article {
	out := make([]Article, n)
	for i := range out {
		out[i] = Article{
			Title:       fmt.Sprintf("Paper %d", i+1),
			ContentType: "Journals",
		}
	}
	return out
}

func TestQueryPagination(t *testing.T) {
	srv := fakeAPI(t, numberedArticles(5))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithAPIKey("test"))
	q := c.Query()
	if err := q.Set("querytext", "graphs"); err != nil {
		t.Fatal(err)
	}
	if err := q.Limit(2); err != nil {
		t.Fatal(err)
	}

	rs, err := q.Send(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if rs.Total() != 5 {
		t.Errorf("Total() = %d, want 5", rs.Total())
	}
	if rs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", rs.Len())
	}
	if got := rs.At(0).Title; got != "Paper 1" {
		t.Errorf("At(0).Title = %q, want %q", got, "Paper 1")
	}

	// Two more pages drain the remaining three records.
	for i := 0; i < 2; i++ {
		if err := rs.FetchMore(context.Background()); err != nil {
			t.Fatalf("FetchMore %d: %v", i, err)
		}
	}
	if rs.Len() != 5 {
		t.Fatalf("Len() after paging = %d, want 5", rs.Len())
	}
	if got := rs.At(4).Title; got != "Paper 5" {
		t.Errorf("At(4).Title = %q, want %q", got, "Paper 5")
	}

	if err := rs.FetchMore(context.Background()); !errors.Is(err, ErrEndOfResults) {
		t.Errorf("FetchMore past end = %v, want ErrEndOfResults", err)
	}
}

func TestQueryParamValidation(t *testing.T) {
	c := NewClient(WithAPIKey("test"))

	cases := []struct {
		desc string
		call func(*Query) error
	}{
		{"unknown parameter", func(q *Query) error { return q.Set("flavor", "x") }},
		{"filter via Set", func(q *Query) error { return q.Set("content_type", "Journals") }},
		{"bad doi", func(q *Query) error { return q.Set("doi", "not-a-doi") }},
		{"bad isbn", func(q *Query) error { return q.Set("isbn", "978-1-4673-6090-7") }},
		{"bad issn", func(q *Query) error { return q.Set("issn", "1234-5678") }},
		{"non-integer year", func(q *Query) error { return q.Set("publication_year", "soon") }},
		{"unknown content type", func(q *Query) error { return q.FilterBy("content_type", "Zines") }},
		{"unknown sort field", func(q *Query) error { return q.SortBy("color", "asc") }},
		{"bad sort order", func(q *Query) error { return q.SortBy("author", "sideways") }},
		{"limit too large", func(q *Query) error { return q.Limit(MaxPageSize + 1) }},
		{"limit zero", func(q *Query) error { return q.Limit(0) }},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			err := tc.call(c.Query())
			var perr *ParamError
			if !errors.As(err, &perr) {
				t.Errorf("got %v, want *ParamError", err)
			}
		})
	}

	t.Run("valid doi", func(t *testing.T) {
		if err := c.Query().Set("doi", "10.1109/5.771073"); err != nil {
			t.Errorf("Set(doi) = %v", err)
		}
	})
}

func TestQueryYearRange(t *testing.T) {
	c := NewClient(WithAPIKey("test"))
	q := c.Query()
	if err := q.FilterBy("start_year", "2015"); err != nil {
		t.Fatal(err)
	}
	if err := q.FilterBy("end_year", "2010"); err == nil {
		t.Fatal("crossed year range accepted")
	}
	// The rejected bound must not stick.
	if got := q.values.Get("end_year"); got != "" {
		t.Errorf("end_year retained as %q after rejection", got)
	}
	if err := q.FilterBy("end_year", "2020"); err != nil {
		t.Errorf("valid end_year rejected: %v", err)
	}
}

func TestClientErrors(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrAuth},
		{http.StatusForbidden, ErrAuth},
		{http.StatusTooManyRequests, ErrRateLimited},
	}
	for _, tc := range cases {
		t.Run(strconv.Itoa(tc.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			c := NewClient(WithBaseURL(srv.URL), WithAPIKey("test"))
			q := c.Query()
			if err := q.Set("querytext", "x"); err != nil {
				t.Fatal(err)
			}
			_, err := q.Send(context.Background())
			if !errors.Is(err, tc.want) {
				t.Errorf("Send() error = %v, want %v", err, tc.want)
			}
		})
	}

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := NewClient(WithBaseURL(srv.URL), WithAPIKey("test"))
		q := c.Query()
		if err := q.Set("querytext", "x"); err != nil {
			t.Fatal(err)
		}
		_, err := q.Send(context.Background())
		var aerr *APIError
		if !errors.As(err, &aerr) {
			t.Fatalf("Send() error = %v, want *APIError", err)
		}
		if aerr.StatusCode != http.StatusInternalServerError {
			t.Errorf("StatusCode = %d, want 500", aerr.StatusCode)
		}
	})
}

func TestClientSendsAPIKey(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		json.NewEncoder(w).Encode(apiResponse{})
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithAPIKey("sekrit"))
	q := c.Query()
	if err := q.Set("querytext", "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := q.Send(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotKey != "sekrit" {
		t.Errorf("X-Api-Key = %q, want %q", gotKey, "sekrit")
	}
}
