// Package source defines the item-source boundary: where comments come
// from. The pipeline only ever scans for current items, extracts their
// display text, and observes a change signal when the collection mutates.
package source

import (
	"sync"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
)

// Item is an opaque handle to one comment unit of the host page.
// Identity is by pointer: a source must resolve the same underlying page
// unit to the same *Item on every scan. Discovery and affordance state live
// in the tracker, not here; the item only carries its text and the claim
// set cached for it after extraction.
type Item struct {
	mu      sync.Mutex
	text    string
	claims  []model.Claim
	summary string
	cached  bool
}

// NewItem creates an item with the given display text.
func NewItem(text string) *Item {
	return &Item{text: text}
}

// Text returns the item's display text.
func (it *Item) Text() string {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.text
}

// SetExtraction caches the claim set and context summary produced by one
// flush. It replaces any previous cache wholesale: claims are never
// appended to incrementally.
func (it *Item) SetExtraction(claims []model.Claim, summary string) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.claims = append([]model.Claim(nil), claims...)
	it.summary = summary
	it.cached = true
}

// Extraction returns the cached claim set and summary. ok is false until
// the first successful flush covered this item.
func (it *Item) Extraction() (claims []model.Claim, summary string, ok bool) {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.claims, it.summary, it.cached
}

// Source is the consumed capability of the host page.
type Source interface {
	// Items scans for all current items, in page order.
	Items() []*Item

	// Text extracts the display text of one item.
	Text(item *Item) string

	// Context snapshots the page-level metadata for an extraction batch.
	Context() model.VideoContext

	// Subscribe registers a change-signal observer and returns its cancel
	// function. The observer fires whenever the item collection mutates;
	// it may fire spuriously.
	Subscribe(fn func()) (cancel func())
}

// Memory is an in-process Source for one-shot input and tests.
type Memory struct {
	mu    sync.Mutex
	items []*Item
	vctx  model.VideoContext
	subs  map[int]func()
	next  int
}

// NewMemory creates a memory source seeded with the given comment texts.
func NewMemory(vctx model.VideoContext, texts ...string) *Memory {
	m := &Memory{vctx: vctx, subs: make(map[int]func())}
	for _, t := range texts {
		m.items = append(m.items, NewItem(t))
	}
	return m
}

// Add appends new comments and fires the change signal.
func (m *Memory) Add(texts ...string) {
	m.mu.Lock()
	for _, t := range texts {
		m.items = append(m.items, NewItem(t))
	}
	subs := make([]func(), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Items returns the current items in insertion order.
func (m *Memory) Items() []*Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Item, len(m.items))
	copy(out, m.items)
	return out
}

// Text returns the item's display text.
func (m *Memory) Text(item *Item) string {
	return item.Text()
}

// Context returns the page metadata snapshot.
func (m *Memory) Context() model.VideoContext {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vctx
}

// Subscribe registers a change observer.
func (m *Memory) Subscribe(fn func()) (cancel func()) {
	m.mu.Lock()
	id := m.next
	m.next++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}
