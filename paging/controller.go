package paging

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrDisposed is returned by load operations issued after Dispose.
var ErrDisposed = errors.New("paging: controller disposed")

// Controller owns one growing (or bounded) item sequence fetched page
// by page from an injected FetchFunc. It maintains the lifecycle state
// machine, a key index for O(1) keyed mutation, the cache eviction
// policy, the generation counter that invalidates stale in-flight
// fetches, and the anchor compensation used to keep a visually anchored
// item stable across memory trims.
//
// All mutations are serialized by an internal lock. The fetch itself
// runs outside the lock; its result is committed only if the generation
// captured at request time still matches, so a refresh can never be
// observably overtaken by an older fetch's delayed completion.
type Controller[T any] struct {
	mu   sync.Mutex
	opts Options[T]
	log  *logrus.Logger

	fetch  FetchFunc[T]
	items  []T
	index  *keyIndex[T]
	evict  evictor
	anchor anchorCompensator
	bus    observerBus[T]

	state      State
	page       int
	hasMore    bool
	lastErr    error
	generation uint64
	disposed   bool
}

// New constructs a Controller around the given fetch function.
func New[T any](fetch FetchFunc[T], opts Options[T]) (*Controller[T], error) {
	if fetch == nil {
		return nil, errors.New("paging: fetch function is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.normalized()

	c := &Controller[T]{
		opts:    opts,
		log:     opts.Logger,
		fetch:   fetch,
		index:   newKeyIndex(opts.KeyOf),
		evict:   evictor{policy: opts.CachePolicy, pageSize: opts.PageSize},
		state:   StateInitial,
		page:    opts.InitialPage,
		hasMore: true,
	}
	if opts.AutoLoadFirstPage {
		go func() { _ = c.LoadFirstPage(context.Background()) }()
	}
	return c, nil
}

// --- public read surface ---

// State returns the current lifecycle state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Items returns a defensive copy of the item sequence.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Item returns the item at position i.
func (c *Controller[T]) Item(i int) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	if i < 0 || i >= len(c.items) {
		return zero, false
	}
	return c.items[i], true
}

// Len returns the item count.
func (c *Controller[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Page returns the last successfully committed page index.
func (c *Controller[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// HasMore reports whether more pages are available.
func (c *Controller[T]) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// LastError returns the error recorded by the most recent failed fetch.
func (c *Controller[T]) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// IsLoading reports whether a fetch is in flight.
func (c *Controller[T]) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.IsLoading()
}

// LeadingInset returns the current leading-space reservation, in layout
// units, that the rendering layer should apply before the first item.
func (c *Controller[T]) LeadingInset() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.anchor.inset
}

// --- observers ---

// Subscribe registers an observer and returns its unsubscribe function.
// Observers implementing Telemetry also receive page-level fetch hooks.
func (c *Controller[T]) Subscribe(obs Observer[T]) func() {
	c.mu.Lock()
	id := c.bus.subscribe(obs)
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		c.bus.unsubscribe(id)
		c.mu.Unlock()
	}
}

// --- load operations ---

// LoadFirstPage fetches the configured initial page, replacing the
// sequence on success. It is a no-op while a fetch is already in
// flight. The fetch error, if any, is both returned and recorded as
// state; the sequence is left untouched on failure.
func (c *Controller[T]) LoadFirstPage(ctx context.Context) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrDisposed
	}
	if c.state.IsLoading() {
		c.mu.Unlock()
		return nil
	}
	prev := c.state
	c.state = StateLoading
	c.page = c.opts.InitialPage
	gen := c.generation
	page := c.opts.InitialPage
	c.mu.Unlock()

	c.notifyState(prev, StateLoading)
	c.notifyChanged(Change{})
	return c.loadPage(ctx, page, gen, true)
}

// LoadNextPage fetches the page after the current cursor and appends it
// on success. It is a no-op while a fetch is in flight, when no more
// data is available, or when the controller is in the error or empty
// state. Safe to invoke from high-frequency scroll callbacks.
func (c *Controller[T]) LoadNextPage(ctx context.Context) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrDisposed
	}
	if c.state != StateLoaded || !c.hasMore {
		c.mu.Unlock()
		return nil
	}
	prev := c.state
	c.state = StateLoadingMore
	gen := c.generation
	page := c.page + 1
	c.mu.Unlock()

	c.notifyState(prev, StateLoadingMore)
	c.notifyChanged(Change{})
	return c.loadPage(ctx, page, gen, false)
}

// Retry re-attempts the failed fetch: the first page when the sequence
// is empty, otherwise the next page. Calling it outside the error state
// is a no-op.
func (c *Controller[T]) Retry(ctx context.Context) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrDisposed
	}
	if c.state != StateError {
		c.mu.Unlock()
		return nil
	}
	first := len(c.items) == 0
	prev := c.state
	var page int
	var next State
	if first {
		next = StateLoading
		page = c.opts.InitialPage
		c.page = page
	} else {
		next = StateLoadingMore
		page = c.page + 1
	}
	c.state = next
	gen := c.generation
	c.mu.Unlock()

	c.notifyState(prev, next)
	c.notifyChanged(Change{})
	return c.loadPage(ctx, page, gen, first)
}

// Refresh clears the sequence, resets the cursor and more-data flag,
// bumps the generation counter so any in-flight fetch is discarded on
// completion, and reloads the first page.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrDisposed
	}
	c.generation++
	prev := c.state
	c.state = StateLoading
	c.items = nil
	c.index.rebuild(nil)
	c.anchor.reset()
	c.page = c.opts.InitialPage
	c.hasMore = true
	c.lastErr = nil
	gen := c.generation
	page := c.opts.InitialPage
	c.mu.Unlock()

	c.notifyState(prev, StateLoading)
	c.notifyChanged(Change{})
	return c.loadPage(ctx, page, gen, true)
}

// loadPage runs the fetch outside the lock and commits the result only
// if the captured generation is still current. Stale completions are
// dropped silently: no state mutation, no notification.
func (c *Controller[T]) loadPage(ctx context.Context, page int, gen uint64, first bool) error {
	c.telemetryRequested(page)
	c.log.WithFields(logrus.Fields{"page": page, "first": first}).Debug("page requested")

	res, err := c.fetch(ctx, page)

	c.mu.Lock()
	if c.disposed || gen != c.generation {
		c.mu.Unlock()
		c.log.WithField("page", page).Debug("stale fetch result discarded")
		return nil
	}

	if err != nil {
		prev := c.state
		c.state = StateError
		c.lastErr = err
		c.mu.Unlock()

		c.notifyState(prev, StateError)
		c.notifyChanged(Change{})
		c.telemetryFailed(page, err, first)
		c.log.WithFields(logrus.Fields{"page": page, "error": err}).Warn("page fetch failed")
		return err
	}

	more := res.more(c.opts.PageSize)
	prev := c.state
	trimmed := false
	anchorKey := ""

	if first || !c.opts.InfiniteScroll {
		c.items = append([]T(nil), res.Items...)
		c.index.rebuild(c.items)
	} else {
		oldLen := len(c.items)
		c.items = append(c.items, res.Items...)
		c.index.appendTail(c.items, oldLen)
		if k := c.evict.trimCount(len(c.items)); k > 0 {
			if c.opts.CompensateForTrim && c.opts.Probe != nil && c.index.enabled() {
				anchorKey = c.opts.KeyOf(c.items[k])
			}
			c.items = append([]T(nil), c.items[k:]...)
			c.index.rebuild(c.items)
			trimmed = true
		}
	}

	c.page = page
	c.lastErr = nil
	switch {
	case first && len(res.Items) == 0:
		c.state = StateEmpty
		c.hasMore = false
	case !more:
		c.state = StateCompleted
		c.hasMore = false
	default:
		c.state = StateLoaded
		c.hasMore = true
	}
	next := c.state
	c.mu.Unlock()

	// Record the anchor's pre-render offset before observers get a
	// chance to re-layout; the matching post-render probe happens in
	// Settle.
	if anchorKey != "" {
		if before, ok := c.opts.Probe(anchorKey); ok {
			c.mu.Lock()
			if gen == c.generation {
				c.anchor.record(anchorKey, before)
			}
			c.mu.Unlock()
		}
	}

	c.notifyState(prev, next)
	c.notifyChanged(Change{Trimmed: trimmed})
	c.telemetrySucceeded(page, res.Items, first)
	c.log.WithFields(logrus.Fields{
		"page":    page,
		"items":   len(res.Items),
		"total":   c.Len(),
		"state":   next.String(),
		"trimmed": trimmed,
	}).Debug("page committed")
	return nil
}

// Settle completes a pending anchor compensation. The rendering layer
// calls it after the re-layout that follows a Trimmed notification; it
// probes the anchor's new offset and folds the drift into the leading
// inset so the anchor's absolute position is restored.
func (c *Controller[T]) Settle() {
	c.mu.Lock()
	rec := c.anchor.take()
	probe := c.opts.Probe
	c.mu.Unlock()
	if rec == nil || probe == nil {
		return
	}

	after, ok := probe(rec.key)
	if !ok {
		return
	}

	c.mu.Lock()
	changed := c.anchor.apply(after - rec.before)
	c.mu.Unlock()
	if changed {
		c.notifyChanged(Change{})
	}
}

// --- scroll-driven prefetch ---

// NotifyScroll feeds the controller the current scroll position so it
// can trigger a next-page load ahead of the viewport reaching the tail.
// offset is the scroll position and maxExtent the total scrollable
// extent, both in layout units. The first visible item is estimated as
// viewport-fraction times item count; a heuristic, not an exact visible
// item computation, since item sizes vary. Trigger priority: the
// item-count trigger first, then the distance trigger, then the default
// invisible-items threshold. Returns whether a load was started.
func (c *Controller[T]) NotifyScroll(ctx context.Context, offset, maxExtent float64) bool {
	c.mu.Lock()
	if c.disposed || c.state != StateLoaded || !c.hasMore {
		c.mu.Unlock()
		return false
	}
	count := len(c.items)
	opts := c.opts
	c.mu.Unlock()

	if !shouldPrefetch(opts, count, offset, maxExtent) {
		return false
	}
	go func() { _ = c.LoadNextPage(ctx) }()
	return true
}

func shouldPrefetch[T any](opts Options[T], count int, offset, maxExtent float64) bool {
	remaining := count
	if maxExtent > 0 {
		fraction := offset / maxExtent
		if fraction < 0 {
			fraction = 0
		}
		if fraction > 1 {
			fraction = 1
		}
		remaining = count - int(fraction*float64(count))
	}

	switch {
	case opts.PrefetchItemCount > 0:
		return remaining <= opts.PrefetchItemCount
	case opts.PrefetchDistance > 0:
		return maxExtent-offset <= opts.PrefetchDistance
	default:
		return remaining <= defaultInvisibleItems
	}
}

// --- keyed and positional mutation ---

// locate resolves an item's position via the key index when it is
// trustworthy, otherwise by linear scan. Caller holds the lock.
func (c *Controller[T]) locate(key string, pred func(T) bool) (int, bool) {
	if key != "" && c.index.enabled() {
		if i, ok := c.index.lookup(key); ok {
			return i, true
		}
		if pred == nil {
			return 0, false
		}
		// Keyed miss with an explicit predicate: the caller may be
		// replacing an item whose key changed. Fall through to the scan.
	}
	if pred == nil {
		if key == "" || c.opts.KeyOf == nil {
			return 0, false
		}
		// Degraded index: scan by key instead.
		pred = func(it T) bool { return c.opts.KeyOf(it) == key }
	}
	for i, it := range c.items {
		if pred(it) {
			return i, true
		}
	}
	return 0, false
}

// UpdateItem replaces the item matching newItem's key (or, without a
// key function, the predicate) in place. Returns whether a target was
// found; a miss performs no notification.
func (c *Controller[T]) UpdateItem(newItem T, pred func(T) bool) bool {
	c.mu.Lock()
	key := ""
	if c.opts.KeyOf != nil {
		key = c.opts.KeyOf(newItem)
	}
	i, ok := c.locate(key, pred)
	if !ok {
		c.mu.Unlock()
		return false
	}
	oldKey := ""
	if c.opts.KeyOf != nil {
		oldKey = c.opts.KeyOf(c.items[i])
	}
	c.items[i] = newItem
	c.index.replaceAt(i, oldKey, key)
	c.mu.Unlock()

	c.notifyChanged(Change{})
	return true
}

// RemoveByKey removes the item with the given key. Returns whether it
// was found.
func (c *Controller[T]) RemoveByKey(key string) bool {
	return c.remove(key, nil)
}

// RemoveItem removes the first item matching the predicate. Returns
// whether one was found.
func (c *Controller[T]) RemoveItem(pred func(T) bool) bool {
	return c.remove("", pred)
}

func (c *Controller[T]) remove(key string, pred func(T) bool) bool {
	c.mu.Lock()
	i, ok := c.locate(key, pred)
	if !ok {
		c.mu.Unlock()
		return false
	}
	removedKey := ""
	if c.opts.KeyOf != nil {
		removedKey = c.opts.KeyOf(c.items[i])
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.index.removeAt(c.items, i, removedKey)

	prev := c.state
	next := prev
	if len(c.items) == 0 && !prev.IsLoading() {
		next = StateEmpty
		c.state = next
	}
	c.mu.Unlock()

	if next != prev {
		c.notifyState(prev, next)
	}
	c.notifyChanged(Change{})
	return true
}

// InsertItem inserts item at position i. Returns false when the index
// is out of bounds.
func (c *Controller[T]) InsertItem(i int, item T) bool {
	c.mu.Lock()
	if i < 0 || i > len(c.items) {
		c.mu.Unlock()
		return false
	}
	var zero T
	c.items = append(c.items, zero)
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = item
	c.index.insertAt(c.items, i)

	prev := c.state
	next := c.leaveEmptyLocked()
	c.mu.Unlock()

	if next != prev {
		c.notifyState(prev, next)
	}
	c.notifyChanged(Change{})
	return true
}

// AppendItem appends item at the tail of the sequence.
func (c *Controller[T]) AppendItem(item T) {
	c.mu.Lock()
	oldLen := len(c.items)
	c.items = append(c.items, item)
	c.index.appendTail(c.items, oldLen)

	prev := c.state
	next := c.leaveEmptyLocked()
	c.mu.Unlock()

	if next != prev {
		c.notifyState(prev, next)
	}
	c.notifyChanged(Change{})
}

// leaveEmptyLocked transitions out of the empty state after an item
// materializes. Caller holds the lock.
func (c *Controller[T]) leaveEmptyLocked() State {
	if c.state == StateEmpty && len(c.items) > 0 {
		c.state = StateLoaded
	}
	return c.state
}

// --- snapshot / restore ---

// Snapshot captures the current sequence, state, cursor and more-data
// flag. The copy is defensive and unaffected by in-flight fetches.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return Snapshot[T]{
		items:   items,
		state:   c.state,
		page:    c.page,
		hasMore: c.hasMore,
		takenAt: timeNow(),
	}
}

// RestoreSnapshot replaces live state with the snapshot wholesale,
// bumps the generation counter so in-flight fetches become inert, and
// rebuilds the key index.
func (c *Controller[T]) RestoreSnapshot(s Snapshot[T]) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.generation++
	prev := c.state
	c.items = s.Items()
	c.index.rebuild(c.items)
	c.anchor.reset()
	c.state = s.state
	c.page = s.page
	c.hasMore = s.hasMore
	c.lastErr = nil
	next := c.state
	c.mu.Unlock()

	if next != prev {
		c.notifyState(prev, next)
	}
	c.notifyChanged(Change{})
}

// Dispose clears the sequence and observer registry and bumps the
// generation counter so any outstanding fetch becomes a no-op on
// completion. Further operations on the controller are no-ops.
func (c *Controller[T]) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.generation++
	c.items = nil
	c.index.rebuild(nil)
	c.anchor.reset()
	c.bus.clear()
	c.mu.Unlock()
}

// --- notification plumbing ---

func (c *Controller[T]) observers() []Observer[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bus.snapshot()
}

func (c *Controller[T]) notifyState(prev, next State) {
	if prev == next {
		return
	}
	for _, obs := range c.observers() {
		obs.OnStateChanged(prev, next)
	}
}

func (c *Controller[T]) notifyChanged(ch Change) {
	for _, obs := range c.observers() {
		obs.OnChanged(ch)
	}
}

func (c *Controller[T]) telemetryRequested(page int) {
	for _, obs := range c.observers() {
		if t, ok := obs.(Telemetry[T]); ok {
			t.OnPageRequested(page)
		}
	}
}

func (c *Controller[T]) telemetrySucceeded(page int, items []T, first bool) {
	for _, obs := range c.observers() {
		if t, ok := obs.(Telemetry[T]); ok {
			t.OnPageSucceeded(page, items, first)
		}
	}
}

func (c *Controller[T]) telemetryFailed(page int, err error, first bool) {
	for _, obs := range c.observers() {
		if t, ok := obs.(Telemetry[T]); ok {
			t.OnPageFailed(page, err, first)
		}
	}
}
