// Package track records which items have been discovered and which already
// carry a fact-check affordance. The association is identity-keyed and
// non-owning: the tracker must never be the reason an item outlives its
// removal from the host page.
package track

import (
	"runtime"
	"sync"
	"weak"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/source"
)

type state struct {
	discovered bool
	affordance bool
	consumed   bool
}

// Tracker tracks per-item pipeline state keyed by item identity, not value:
// two items with identical text are tracked independently. Entries are held
// through weak pointers and dropped by a runtime cleanup once the host
// releases the item.
type Tracker struct {
	mu    sync.Mutex
	items map[weak.Pointer[source.Item]]*state
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{items: make(map[weak.Pointer[source.Item]]*state)}
}

// IsNew reports whether the item has never been marked discovered.
func (t *Tracker) IsNew(item *source.Item) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.lookup(item, false)
	return s == nil || !s.discovered
}

// MarkDiscovered marks the item discovered. Re-marking is a no-op, so scans
// are idempotent.
func (t *Tracker) MarkDiscovered(item *source.Item) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lookup(item, true).discovered = true
}

// MarkAffordanceAttached atomically checks and marks the one-affordance
// state: true and marks on the first call for an item, false and no-op on
// every later call.
func (t *Tracker) MarkAffordanceAttached(item *source.Item) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.lookup(item, true)
	if s.affordance {
		return false
	}
	s.affordance = true
	return true
}

// ConsumeAffordance consumes the item's affordance, allowing exactly one
// analysis activation per item. It returns false when no affordance was
// ever attached or it has already been consumed.
func (t *Tracker) ConsumeAffordance(item *source.Item) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.lookup(item, false)
	if s == nil || !s.affordance || s.consumed {
		return false
	}
	s.consumed = true
	return true
}

// Len returns the number of tracked items.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.items)
}

// lookup finds the item's state entry, creating it (and registering the
// reclaim cleanup) when create is set. Callers hold t.mu.
func (t *Tracker) lookup(item *source.Item, create bool) *state {
	key := weak.Make(item)
	if s, ok := t.items[key]; ok {
		return s
	}
	if !create {
		return nil
	}
	s := &state{}
	t.items[key] = s
	runtime.AddCleanup(item, func(k weak.Pointer[source.Item]) {
		t.mu.Lock()
		delete(t.items, k)
		t.mu.Unlock()
	}, key)
	return s
}
