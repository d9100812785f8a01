// Package observes connects feedkit to external observability
// backends: Sentry for error reporting and OpenTelemetry for tracing.
// Both are optional; nothing in paging depends on this package.
package observes

import (
	"fmt"
	"strconv"

	"github.com/getsentry/sentry-go"

	"github.com/feedkit/feedkit/paging"
)

// SentryOptions configures the global Sentry client.
type SentryOptions struct {
	Dsn         string
	Name        string
	Release     string
	Environment string
}

// NewSentry initializes the global Sentry client.
func NewSentry(opt *SentryOptions) error {
	// if not exist sentry config, skip initialization
	if opt == nil {
		return nil
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              opt.Dsn,
		AttachStacktrace: true,
		TracesSampleRate: 1.0,
		ServerName:       opt.Name,
		Release:          opt.Release,
		Environment:      opt.Environment,
	})
}

// SentryReporter forwards controller activity to Sentry: state
// transitions and page requests become breadcrumbs, fetch failures
// become captured exceptions. It satisfies both paging.Observer and
// paging.Telemetry, so a single Subscribe wires everything up.
type SentryReporter[T any] struct {
	hub *sentry.Hub
}

// NewSentryReporter builds a reporter on the given hub, falling back to
// the current global hub when nil.
func NewSentryReporter[T any](hub *sentry.Hub) *SentryReporter[T] {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &SentryReporter[T]{hub: hub}
}

func (r *SentryReporter[T]) OnStateChanged(previous, next paging.State) {
	r.hub.AddBreadcrumb(&sentry.Breadcrumb{
		Category: "paging",
		Message:  fmt.Sprintf("state %s -> %s", previous, next),
		Level:    sentry.LevelInfo,
	}, nil)
}

func (r *SentryReporter[T]) OnChanged(paging.Change) {}

func (r *SentryReporter[T]) OnPageRequested(page int) {
	r.hub.AddBreadcrumb(&sentry.Breadcrumb{
		Category: "paging",
		Message:  fmt.Sprintf("requested page %d", page),
		Level:    sentry.LevelInfo,
	}, nil)
}

func (r *SentryReporter[T]) OnPageSucceeded(page int, items []T, firstPage bool) {
	r.hub.AddBreadcrumb(&sentry.Breadcrumb{
		Category: "paging",
		Message:  fmt.Sprintf("page %d succeeded with %d items", page, len(items)),
		Level:    sentry.LevelInfo,
	}, nil)
}

func (r *SentryReporter[T]) OnPageFailed(page int, err error, firstPage bool) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("paging.page", strconv.Itoa(page))
		scope.SetTag("paging.first_page", strconv.FormatBool(firstPage))
		r.hub.CaptureException(err)
	})
}
