package paging

// KeyFunc derives a stable identity key from an item. Keys must be
// non-empty and unique across the current sequence for keyed fast paths
// to stay active; violations degrade lookups to linear scans.
type KeyFunc[T any] func(item T) string

// keyIndex maintains the key -> position mapping for the item sequence.
// It is an optimization overlay: when the key function yields duplicate
// or empty keys it flags itself degraded and the controller falls back
// to predicate scans until the next full rebuild clears the condition.
type keyIndex[T any] struct {
	keyOf    KeyFunc[T]
	pos      map[string]int
	degraded bool
}

func newKeyIndex[T any](keyOf KeyFunc[T]) *keyIndex[T] {
	ix := &keyIndex[T]{keyOf: keyOf}
	if keyOf != nil {
		ix.pos = make(map[string]int)
	}
	return ix
}

// enabled reports whether keyed lookups are currently trustworthy.
func (ix *keyIndex[T]) enabled() bool {
	return ix.keyOf != nil && !ix.degraded
}

// lookup resolves a key to its position in O(1).
func (ix *keyIndex[T]) lookup(key string) (int, bool) {
	if !ix.enabled() || key == "" {
		return 0, false
	}
	i, ok := ix.pos[key]
	return i, ok
}

// rebuild reindexes the whole sequence and re-checks the uniqueness
// precondition, clearing any previous degradation.
func (ix *keyIndex[T]) rebuild(items []T) {
	if ix.keyOf == nil {
		return
	}
	ix.degraded = false
	ix.pos = make(map[string]int, len(items))
	for i, it := range items {
		k := ix.keyOf(it)
		if k == "" {
			ix.degraded = true
			continue
		}
		if _, dup := ix.pos[k]; dup {
			ix.degraded = true
			continue
		}
		ix.pos[k] = i
	}
}

// appendTail indexes items appended at the tail without touching
// existing entries. items is the post-append sequence and oldLen its
// length before the append.
func (ix *keyIndex[T]) appendTail(items []T, oldLen int) {
	if !ix.enabled() {
		return
	}
	for i := oldLen; i < len(items); i++ {
		k := ix.keyOf(items[i])
		if k == "" {
			ix.degraded = true
			return
		}
		if _, dup := ix.pos[k]; dup {
			ix.degraded = true
			return
		}
		ix.pos[k] = i
	}
}

// insertAt reindexes positions >= i after an insertion. items is the
// post-insert sequence.
func (ix *keyIndex[T]) insertAt(items []T, i int) {
	if !ix.enabled() {
		return
	}
	k := ix.keyOf(items[i])
	if k == "" {
		ix.degraded = true
		return
	}
	if _, dup := ix.pos[k]; dup {
		ix.degraded = true
		return
	}
	for j := i + 1; j < len(items); j++ {
		ix.pos[ix.keyOf(items[j])] = j
	}
	ix.pos[k] = i
}

// removeAt drops the removed key and reindexes positions >= i. items is
// the post-removal sequence and removedKey the key of the removed item.
func (ix *keyIndex[T]) removeAt(items []T, i int, removedKey string) {
	if !ix.enabled() {
		return
	}
	delete(ix.pos, removedKey)
	for j := i; j < len(items); j++ {
		ix.pos[ix.keyOf(items[j])] = j
	}
}

// replaceAt updates the entry at position i after an in-place item
// replacement, handling a changed key.
func (ix *keyIndex[T]) replaceAt(i int, oldKey, newKey string) {
	if !ix.enabled() {
		return
	}
	if oldKey == newKey {
		return
	}
	delete(ix.pos, oldKey)
	if newKey == "" {
		ix.degraded = true
		return
	}
	if _, dup := ix.pos[newKey]; dup {
		ix.degraded = true
		return
	}
	ix.pos[newKey] = i
}
