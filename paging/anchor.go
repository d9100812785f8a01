package paging

import "math"

// ProbeFunc reports the current on-screen offset of the item with the
// given key along the scroll axis, or ok=false when the item is not
// laid out. Implemented by the rendering layer; must be a pure position
// query with no side effects.
type ProbeFunc func(key string) (offset float64, ok bool)

// anchorEpsilon is the minimum offset drift, in layout units, worth
// compensating for.
const anchorEpsilon = 0.5

// anchorRecord captures the anchor item's position before a trim.
type anchorRecord struct {
	key    string
	before float64
}

// anchorCompensator neutralizes the visual jump caused by evicting
// leading items. It records the first surviving item's offset before a
// trim and, once the renderer has settled, converts any drift into a
// persistent leading-space reservation. Best-effort: it corrects the
// single anchor point and trusts the renderer's layout for the rest.
type anchorCompensator struct {
	inset   float64
	pending *anchorRecord
}

// record stores the pre-trim probe result for the anchor key.
func (a *anchorCompensator) record(key string, before float64) {
	a.pending = &anchorRecord{key: key, before: before}
}

// take returns and clears the pending record.
func (a *anchorCompensator) take() *anchorRecord {
	rec := a.pending
	a.pending = nil
	return rec
}

// apply folds the observed drift into the leading inset, clamped to be
// non-negative. It reports whether the inset changed.
func (a *anchorCompensator) apply(delta float64) bool {
	if math.Abs(delta) < anchorEpsilon {
		return false
	}
	inset := a.inset - delta
	if inset < 0 {
		inset = 0
	}
	if inset == a.inset {
		return false
	}
	a.inset = inset
	return true
}

// reset drops the reservation and any pending record.
func (a *anchorCompensator) reset() {
	a.inset = 0
	a.pending = nil
}
