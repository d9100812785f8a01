package paging

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultPageSize is used when Options.PageSize is unset.
	DefaultPageSize = 20

	// defaultInvisibleItems is the prefetch threshold used when neither
	// the item-count nor the distance trigger is configured.
	defaultInvisibleItems = 3
)

var validate = validator.New()

// Options configures a Controller.
type Options[T any] struct {
	// PageSize is the expected number of items per page. It drives the
	// inferred more-data flag and the KeepNone cache bound.
	PageSize int `validate:"gte=0"`

	// InitialPage is the page index the first load requests and the
	// cursor value a refresh resets to.
	InitialPage int `validate:"gte=0"`

	// InfiniteScroll accumulates pages into one growing sequence. When
	// false each loaded page replaces the previous one and the cache
	// policy does not apply.
	InfiniteScroll bool

	// AutoLoadFirstPage kicks off the first-page load on construction.
	AutoLoadFirstPage bool

	// CachePolicy bounds retained items in infinite-scroll mode.
	CachePolicy CachePolicy

	// MaxCachedItems is a convenience bound: when set and CachePolicy
	// is left at its default, it is promoted to KeepLast(MaxCachedItems).
	MaxCachedItems int `validate:"gte=0"`

	// PrefetchItemCount triggers a next-page load when at most this
	// many items remain below the estimated first visible item. Takes
	// priority over PrefetchDistance when both are set.
	PrefetchItemCount int `validate:"gte=0"`

	// PrefetchDistance triggers a next-page load when the remaining
	// scroll distance drops to this many layout units.
	PrefetchDistance float64 `validate:"gte=0"`

	// CompensateForTrim enables the anchor compensation pass after
	// cache eviction. Requires KeyOf and Probe.
	CompensateForTrim bool

	// KeyOf derives a stable identity key per item. Optional; without
	// it keyed operations are unavailable and only positional or
	// predicate operations work.
	KeyOf KeyFunc[T]

	// Probe reports an item's current on-screen offset, implemented by
	// the rendering layer. Optional; required for trim compensation.
	Probe ProbeFunc

	// Logger overrides the logrus logger used for debug output.
	Logger *logrus.Logger
}

// normalized applies defaults and the MaxCachedItems promotion.
func (o Options[T]) normalized() Options[T] {
	if o.PageSize == 0 {
		o.PageSize = DefaultPageSize
	}
	if o.MaxCachedItems > 0 && o.CachePolicy == (CachePolicy{}) {
		o.CachePolicy = KeepLast(o.MaxCachedItems)
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}

// Validate validates the options.
func (o Options[T]) Validate() error {
	if err := validate.Struct(o); err != nil {
		return err
	}
	if err := o.CachePolicy.validate(); err != nil {
		return err
	}
	if o.CompensateForTrim && o.KeyOf == nil {
		return errors.New("trim compensation requires a key function")
	}
	return nil
}
