package paging

import "time"

// timeNow is stubbed in tests.
var timeNow = time.Now

// Snapshot is an immutable capture of the controller's visible state,
// independent of any in-flight fetch. Restoring a snapshot invalidates
// outstanding requests via the generation counter.
type Snapshot[T any] struct {
	items   []T
	state   State
	page    int
	hasMore bool
	takenAt time.Time
}

// Items returns a copy of the captured sequence.
func (s Snapshot[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the captured sequence length.
func (s Snapshot[T]) Len() int { return len(s.items) }

// State returns the captured lifecycle state.
func (s Snapshot[T]) State() State { return s.state }

// Page returns the captured page cursor.
func (s Snapshot[T]) Page() int { return s.page }

// HasMore returns the captured more-data flag.
func (s Snapshot[T]) HasMore() bool { return s.hasMore }

// TakenAt returns when the snapshot was captured.
func (s Snapshot[T]) TakenAt() time.Time { return s.takenAt }
