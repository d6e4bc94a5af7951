package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophdir/internal/client/directory"
	"github.com/dmitrijs2005/gophdir/internal/client/models"
	"github.com/dmitrijs2005/gophdir/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Resolver turns pages of directory references into resolved objects.
type Resolver struct {
	workers int
	logger  logging.Logger
}

// NewResolver returns a Resolver running at most workers lookups at a time.
func NewResolver(workers int, logger logging.Logger) *Resolver {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Resolver{workers: workers, logger: logger}
}

// Resolve walks the reference pages returned by fetch and looks every
// reference up with lookup.
//
// Pages are fetched one after another; lookups within a page run
// concurrently. The result keeps reference order. A lookup reporting
// directory.ErrNotFound yields an absent value, any other lookup error is
// stored on that item alone. A page fetch error or a cancelled context
// fails the whole call. A reference list with no entries yields an empty,
// non-nil slice.
func Resolve[T any](ctx context.Context, r *Resolver, fetch PageFunc[models.DirectoryObject],
	lookup func(ctx context.Context, id string) (T, error)) ([]models.Resolved[T], error) {

	out := []models.Resolved[T]{}
	cursor := ""
	for {
		page, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}

		results := make([]models.Resolved[T], len(page.Items))

		var g errgroup.Group
		g.SetLimit(r.workers)
		for i, ref := range page.Items {
			g.Go(func() error {
				results[i] = resolveOne(ctx, r.logger, ref.ID, lookup)
				return nil
			})
		}
		_ = g.Wait()

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, results...)

		if page.Next == "" {
			return out, nil
		}
		if page.Next == cursor {
			return nil, fmt.Errorf("pagination cursor did not advance: %q", cursor)
		}
		cursor = page.Next
	}
}

func resolveOne[T any](ctx context.Context, logger logging.Logger, id string,
	lookup func(ctx context.Context, id string) (T, error)) models.Resolved[T] {

	v, err := lookup(ctx, id)
	switch {
	case errors.Is(err, directory.ErrNotFound):
		return models.Resolved[T]{ID: id, Value: models.None[T]()}
	case err != nil:
		logger.Warn(ctx, "reference lookup failed", "id", id, "error", err)
		return models.Resolved[T]{ID: id, Err: err}
	}
	return models.Resolved[T]{ID: id, Value: models.Some(v)}
}
