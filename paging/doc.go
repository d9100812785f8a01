// Package paging provides an incremental-data controller for page-by-page
// consumption of very large datasets with bounded memory.
//
// The controller fetches pages through an injected fetch function, exposes
// one growing (or bounded) item sequence to a consumer, supports O(1)
// keyed mutation of individual items, and keeps a visually anchored item
// stable on screen while older items are evicted.
//
// # Basic Usage
//
// Construct a controller around a fetch function:
//
//	ctrl, err := paging.New(fetchUsers, paging.Options[User]{
//	    PageSize:       20,
//	    InfiniteScroll: true,
//	    KeyOf:          func(u User) string { return u.ID },
//	})
//
// Drive it from the consumer:
//
//	_ = ctrl.LoadFirstPage(ctx)
//	_ = ctrl.LoadNextPage(ctx) // no-op while loading or when exhausted
//
// Observe mutations:
//
//	unsubscribe := ctrl.Subscribe(myObserver)
//	defer unsubscribe()
//
// # Memory Bounding
//
// In infinite-scroll mode the cache policy decides how many leading
// items are discarded after each append:
//
//	paging.KeepAll()    // never trim (default)
//	paging.KeepNone()   // keep only the most recent page
//	paging.KeepLast(n)  // keep the n most recent items
//
// # Anchor Compensation
//
// Evicting leading items shifts the remaining ones toward the start of
// the viewport. With CompensateForTrim enabled and a Probe supplied by
// the rendering layer, the controller records the first surviving item's
// offset before the trim, and after the renderer settles (the renderer
// calls Settle following a Trimmed notification) converts the drift into
// a leading-space reservation exposed via LeadingInset.
//
// # Staleness
//
// There is no true cancellation of an in-flight fetch; a generation
// counter captured at request time is checked at completion, and a
// mismatched result is dropped without mutating state or notifying.
// Refresh, RestoreSnapshot and Dispose bump the generation.
//
// # Error Handling
//
// The controller recognizes a single error kind: the fetch failed. The
// opaque error value is recorded and exposed via LastError while the
// state machine transitions to StateError; Retry re-attempts the failed
// page. Item mutations report not-found as a boolean, never an error.
package paging
