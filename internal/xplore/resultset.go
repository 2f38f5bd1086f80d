package xplore

import (
	"context"
	"net/url"
	"strconv"
)

// ResultSet holds the articles fetched so far for one query, along
// with the server's total record count. Total may exceed Len; call
// FetchMore to pull the next page.
type ResultSet struct {
	client *Client
	values url.Values
	total  int
	items  []Article
}

// Total reports how many records the server matched, which is
// independent of how many have been fetched.
func (rs *ResultSet) Total() int { return rs.total }

// Len reports how many articles have been fetched so far.
func (rs *ResultSet) Len() int { return len(rs.items) }

// Articles returns the fetched articles in server order.
func (rs *ResultSet) Articles() []Article { return rs.items }

// At returns the i-th fetched article.
func (rs *ResultSet) At(i int) Article { return rs.items[i] }

// FetchMore retrieves the next page and appends it. It returns
// ErrEndOfResults once every matched record has been fetched; that
// is the normal end of iteration, not a fault.
func (rs *ResultSet) FetchMore(ctx context.Context) error {
	if len(rs.items) >= rs.total {
		return ErrEndOfResults
	}

	values := cloneValues(rs.values)
	values.Set("start_record", strconv.Itoa(len(rs.items)+1))

	page, err := rs.client.fetch(ctx, values)
	if err != nil {
		return err
	}
	if len(page.Articles) == 0 {
		return ErrEndOfResults
	}
	rs.total = page.TotalRecords
	rs.items = append(rs.items, page.Articles...)
	return nil
}
