package paging

import "context"

// PageResult holds one fetched page.
type PageResult[T any] struct {
	// Items are the page's items in display order.
	Items []T
	// HasMore reports whether more pages exist after this one.
	HasMore bool
	// InferMore, when set, ignores HasMore and derives availability from
	// the page-size comparison: a full page means more data may exist.
	InferMore bool
}

// FetchFunc fetches one page from the data source. The controller never
// performs I/O itself; all loading goes through an injected FetchFunc.
type FetchFunc[T any] func(ctx context.Context, page int) (PageResult[T], error)

// Page builds a PageResult with an explicit more-data flag.
func Page[T any](items []T, hasMore bool) PageResult[T] {
	return PageResult[T]{Items: items, HasMore: hasMore}
}

// Slice builds a PageResult whose more-data flag is inferred by the
// controller from the configured page size.
func Slice[T any](items []T) PageResult[T] {
	return PageResult[T]{Items: items, InferMore: true}
}

// more resolves the effective more-data flag for a fetched page.
func (r PageResult[T]) more(pageSize int) bool {
	if r.InferMore {
		return len(r.Items) >= pageSize
	}
	return r.HasMore
}
