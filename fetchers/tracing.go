package fetchers

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/feedkit/feedkit/paging"
)

const tracerName = "github.com/feedkit/feedkit/fetchers"

// WithTracing wraps each fetch in an OpenTelemetry span carrying the
// page number and outcome. A nil tracer uses the global provider.
func WithTracing[T any](tracer trace.Tracer) func(paging.FetchFunc[T]) paging.FetchFunc[T] {
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return func(next paging.FetchFunc[T]) paging.FetchFunc[T] {
		return func(ctx context.Context, page int) (paging.PageResult[T], error) {
			ctx, span := tracer.Start(ctx, "paging.fetch",
				trace.WithAttributes(attribute.Int("paging.page", page)))
			defer span.End()

			res, err := next(ctx, page)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return res, err
			}
			span.SetAttributes(
				attribute.Int("paging.items", len(res.Items)),
				attribute.Bool("paging.has_more", res.HasMore),
			)
			return res, nil
		}
	}
}
