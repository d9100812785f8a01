package fetchers

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"github.com/feedkit/feedkit/paging"
)

// DefaultBreakerSettings trips the breaker once at least 3 requests
// have been observed and 60% of them failed.
func DefaultBreakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 100,
		Interval:    5 * time.Second,
		Timeout:     3 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
	}
}

// WithBreaker wraps a fetch function in a circuit breaker. While the
// breaker is open, fetches fail fast with gobreaker.ErrOpenState, which
// the controller records like any other fetch failure.
func WithBreaker[T any](settings gobreaker.Settings) func(paging.FetchFunc[T]) paging.FetchFunc[T] {
	cb := gobreaker.NewCircuitBreaker(settings)
	return func(next paging.FetchFunc[T]) paging.FetchFunc[T] {
		return func(ctx context.Context, page int) (paging.PageResult[T], error) {
			v, err := cb.Execute(func() (any, error) {
				return next(ctx, page)
			})
			if err != nil {
				return paging.PageResult[T]{}, err
			}
			return v.(paging.PageResult[T]), nil
		}
	}
}
