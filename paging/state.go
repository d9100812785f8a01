package paging

// State represents the controller's lifecycle state.
type State int

const (
	// StateInitial is the state before any load has been attempted.
	StateInitial State = iota
	// StateLoading indicates the first page is being fetched.
	StateLoading
	// StateLoaded indicates items are present and more pages may exist.
	StateLoaded
	// StateLoadingMore indicates a subsequent page is being fetched.
	StateLoadingMore
	// StateError indicates the most recent fetch failed.
	StateError
	// StateEmpty indicates the first page completed with no items.
	StateEmpty
	// StateCompleted indicates all pages have been loaded.
	StateCompleted
)

// String returns the human-readable state name.
func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateLoadingMore:
		return "loading_more"
	case StateError:
		return "error"
	case StateEmpty:
		return "empty"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// IsLoading reports whether the state is one of the in-flight states.
func (s State) IsLoading() bool {
	return s == StateLoading || s == StateLoadingMore
}
