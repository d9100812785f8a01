package paging

// Change describes a mutation to the controller's visible state.
type Change struct {
	// Trimmed is set when leading items were evicted by the cache
	// policy. Renderers should call Settle after the next layout pass
	// so the anchor compensation can complete.
	Trimmed bool
}

// Observer receives synchronous notifications after every mutation to
// visible state. Callbacks run on the mutating goroutine before the
// operation returns; they may read the controller but should not block.
type Observer[T any] interface {
	// OnStateChanged fires when the lifecycle state transitions.
	OnStateChanged(previous, next State)
	// OnChanged fires after any mutation; consumers re-read state.
	OnChanged(change Change)
}

// Telemetry is an optional extension of Observer for page-level fetch
// instrumentation.
type Telemetry[T any] interface {
	OnPageRequested(page int)
	OnPageSucceeded(page int, items []T, firstPage bool)
	OnPageFailed(page int, err error, firstPage bool)
}

type subscription[T any] struct {
	id  uint64
	obs Observer[T]
}

// observerBus is an explicit subscribe/unsubscribe registry. Access is
// guarded by the owning controller's lock; notification happens on a
// snapshot taken under that lock.
type observerBus[T any] struct {
	nextID uint64
	subs   []subscription[T]
}

func (b *observerBus[T]) subscribe(obs Observer[T]) uint64 {
	b.nextID++
	b.subs = append(b.subs, subscription[T]{id: b.nextID, obs: obs})
	return b.nextID
}

func (b *observerBus[T]) unsubscribe(id uint64) {
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// snapshot returns the observers in subscription order.
func (b *observerBus[T]) snapshot() []Observer[T] {
	if len(b.subs) == 0 {
		return nil
	}
	out := make([]Observer[T], len(b.subs))
	for i, s := range b.subs {
		out[i] = s.obs
	}
	return out
}

func (b *observerBus[T]) clear() {
	b.subs = nil
}
