package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophdir/internal/client/models"
)

// PageFunc fetches the page at cursor; the empty cursor is the first page.
type PageFunc[T any] func(ctx context.Context, cursor string) (models.Page[T], error)

// FetchAll follows cursors until the listing is exhausted and returns the
// items in page order.
//
// With limit > 0 it stops after the first page that brings the total to at
// least limit. That page is kept whole, so the result may exceed limit.
// Any fetch error discards everything gathered so far.
func FetchAll[T any](ctx context.Context, fetch PageFunc[T], limit int) ([]T, error) {
	items := []T{}
	cursor := ""
	for {
		page, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)

		if page.Next == "" || (limit > 0 && len(items) >= limit) {
			return items, nil
		}
		if page.Next == cursor {
			return nil, fmt.Errorf("pagination cursor did not advance: %q", cursor)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cursor = page.Next
	}
}
