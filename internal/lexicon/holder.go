package lexicon

import "sync/atomic"

// Holder publishes the current Lexicon to concurrent readers. The lexicon is
// rebuilt from a fresh catalog snapshot only via Replace; it goes stale when
// the catalog changes and nobody calls Replace, which is accepted and
// surfaced through the rebuild endpoint rather than fixed transparently.
type Holder struct {
	current atomic.Pointer[Lexicon]
}

// NewHolder creates a holder seeded with the given lexicon.
func NewHolder(l *Lexicon) *Holder {
	h := &Holder{}
	h.current.Store(l)
	return h
}

// Get returns the current lexicon snapshot.
func (h *Holder) Get() *Lexicon {
	return h.current.Load()
}

// Replace atomically swaps in a freshly built lexicon.
func (h *Holder) Replace(l *Lexicon) {
	h.current.Store(l)
}
