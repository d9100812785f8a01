package paging

import "fmt"

type cachePolicyKind int

const (
	keepAll cachePolicyKind = iota
	keepNone
	keepLast
)

// CachePolicy bounds how many items the controller retains in memory
// while accumulating pages in infinite-scroll mode.
type CachePolicy struct {
	kind cachePolicyKind
	n    int
}

// KeepAll retains every fetched item. This is the default.
func KeepAll() CachePolicy { return CachePolicy{kind: keepAll} }

// KeepNone retains only the most recent page worth of items.
func KeepNone() CachePolicy { return CachePolicy{kind: keepNone} }

// KeepLast retains at most the n most recent items.
func KeepLast(n int) CachePolicy { return CachePolicy{kind: keepLast, n: n} }

// String returns the policy in a loggable form.
func (p CachePolicy) String() string {
	switch p.kind {
	case keepNone:
		return "keep_none"
	case keepLast:
		return fmt.Sprintf("keep_last(%d)", p.n)
	default:
		return "keep_all"
	}
}

func (p CachePolicy) validate() error {
	if p.kind == keepLast && p.n < 1 {
		return fmt.Errorf("keep_last bound must be greater than 0, got %d", p.n)
	}
	return nil
}

// evictor decides how many leading items to discard after an append.
type evictor struct {
	policy   CachePolicy
	pageSize int
}

// trimCount returns the number of leading items to discard for the
// given sequence length. Zero means no trim is required.
func (e evictor) trimCount(length int) int {
	switch e.policy.kind {
	case keepNone:
		if length > e.pageSize {
			return length - e.pageSize
		}
	case keepLast:
		if length > e.policy.n {
			return length - e.policy.n
		}
	}
	return 0
}
