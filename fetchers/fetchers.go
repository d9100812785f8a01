// Package fetchers provides ready-made page fetchers and composable
// middleware around paging.FetchFunc. The controller itself never
// performs I/O; everything network- or cache-shaped lives here, at the
// fetch boundary.
package fetchers

import (
	"context"

	"github.com/feedkit/feedkit/paging"
)

// Static serves pages of size pageSize from a fixed in-memory slice.
// Useful for tests, demos and already-materialized datasets. Pages are
// zero-based.
func Static[T any](items []T, pageSize int) paging.FetchFunc[T] {
	return func(_ context.Context, page int) (paging.PageResult[T], error) {
		start := page * pageSize
		if start < 0 || start >= len(items) {
			return paging.Page([]T{}, false), nil
		}
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}
		return paging.Page(items[start:end], end < len(items)), nil
	}
}

// Chain applies middleware right-to-left, so the first one wraps the
// outermost layer:
//
//	fetch = fetchers.Chain(base, withLog, withCache)
//	// log -> cache -> base
func Chain[T any](fetch paging.FetchFunc[T], middleware ...func(paging.FetchFunc[T]) paging.FetchFunc[T]) paging.FetchFunc[T] {
	for i := len(middleware) - 1; i >= 0; i-- {
		fetch = middleware[i](fetch)
	}
	return fetch
}
