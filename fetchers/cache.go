package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/feedkit/feedkit/paging"
)

// cachedPage is the wire form of a memoized page.
type cachedPage[T any] struct {
	Items     []T  `json:"items"`
	HasMore   bool `json:"has_more"`
	InferMore bool `json:"infer_more,omitempty"`
}

// WithCache memoizes fetched pages in Redis under "<prefix>:page:<n>"
// for the given TTL. A nil client degrades to a passthrough, and cache
// errors fall back to a direct fetch, so the middleware never makes a
// page load fail that would otherwise succeed.
func WithCache[T any](rc *redis.Client, prefix string, ttl time.Duration) func(paging.FetchFunc[T]) paging.FetchFunc[T] {
	return func(next paging.FetchFunc[T]) paging.FetchFunc[T] {
		if rc == nil {
			return next
		}
		return func(ctx context.Context, page int) (paging.PageResult[T], error) {
			key := fmt.Sprintf("%s:page:%d", prefix, page)

			if raw, err := rc.Get(ctx, key).Result(); err == nil {
				var cached cachedPage[T]
				if err := json.Unmarshal([]byte(raw), &cached); err == nil {
					return paging.PageResult[T]{
						Items:     cached.Items,
						HasMore:   cached.HasMore,
						InferMore: cached.InferMore,
					}, nil
				}
				logrus.WithField("key", key).Warn("discarding unreadable cached page")
			}

			res, err := next(ctx, page)
			if err != nil {
				return res, err
			}

			bytes, err := json.Marshal(cachedPage[T]{
				Items:     res.Items,
				HasMore:   res.HasMore,
				InferMore: res.InferMore,
			})
			if err == nil {
				if err := rc.Set(ctx, key, bytes, ttl).Err(); err != nil {
					logrus.WithField("key", key).WithError(err).Warn("failed to cache page")
				}
			}
			return res, nil
		}
	}
}

// InvalidateCache removes every memoized page under the prefix. Call it
// alongside Controller.Refresh so a pull-to-refresh reaches the source.
func InvalidateCache(ctx context.Context, rc *redis.Client, prefix string) error {
	if rc == nil {
		return nil
	}
	iter := rc.Scan(ctx, 0, prefix+":page:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := rc.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate cached page %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}
