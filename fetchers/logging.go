package fetchers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/feedkit/feedkit/paging"
)

// WithLogging logs every fetch with its page, duration and outcome.
func WithLogging[T any](log *logrus.Logger) func(paging.FetchFunc[T]) paging.FetchFunc[T] {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return func(next paging.FetchFunc[T]) paging.FetchFunc[T] {
		return func(ctx context.Context, page int) (paging.PageResult[T], error) {
			start := time.Now()
			res, err := next(ctx, page)
			fields := logrus.Fields{
				"page":     page,
				"duration": time.Since(start),
			}
			if err != nil {
				log.WithFields(fields).WithError(err).Warn("page fetch failed")
				return res, err
			}
			fields["items"] = len(res.Items)
			log.WithFields(fields).Debug("page fetched")
			return res, nil
		}
	}
}
