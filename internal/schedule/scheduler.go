// Package schedule owns the discovery queue and the debounce timer that
// coalesces bursts of new comments into single extraction batches.
package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/source"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/track"
)

// Extractor is the batch claim-extraction backend. Implemented by the
// remote HTTP client and the direct LLM providers.
type Extractor interface {
	Extract(ctx context.Context, vctx model.VideoContext, texts []string) (model.BatchResult, error)
}

// Scheduler debounces discovery into batched extraction calls. Bursts of
// discovery events collapse into exactly one flush, fired one quiet period
// after the last event of the burst.
type Scheduler struct {
	src       source.Source
	tracker   *track.Tracker
	extractor Extractor
	quiet     time.Duration

	// attach is called once per item that became eligible for fact-checking
	// (its affordance request). Guarded by the tracker's check-and-mark, so
	// it fires at most once per item across all flushes.
	attach func(*source.Item)

	// Logf, when set, receives diagnostics. Failures never propagate.
	Logf func(format string, args ...any)

	mu      sync.Mutex
	pending []*source.Item
	timer   *time.Timer
	cancel  func()
}

// New creates a scheduler. attach may be nil.
func New(src source.Source, tracker *track.Tracker, extractor Extractor, attach func(*source.Item), quiet time.Duration) *Scheduler {
	return &Scheduler{
		src:       src,
		tracker:   tracker,
		extractor: extractor,
		attach:    attach,
		quiet:     quiet,
	}
}

// Start wires the change-signal subscription and runs the initial scan.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.cancel == nil {
		s.cancel = s.src.Subscribe(s.OnChange)
	}
	s.mu.Unlock()

	s.OnChange()
}

// Stop detaches the change-signal subscription and cancels any pending
// flush timer. Items already queued are dropped unflushed.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
}

// OnChange scans the source for unseen items, marks them discovered,
// queues them in discovery order and re-arms the flush timer. Re-scanning
// already-discovered items is a no-op.
func (s *Scheduler) OnChange() {
	items := s.src.Items()

	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := 0
	for _, it := range items {
		if s.tracker.IsNew(it) {
			s.tracker.MarkDiscovered(it)
			s.pending = append(s.pending, it)
			fresh++
		}
	}
	if fresh == 0 {
		return
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.quiet, func() {
		s.Flush(context.Background())
	})
}

// PendingLen returns the number of queued, not-yet-flushed items.
func (s *Scheduler) PendingLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Flush atomically takes the whole pending queue and issues one extraction
// call over it. New discoveries during the in-flight call accumulate into a
// fresh queue. On failure the batch degrades to "nothing eligible": no
// partial state is cached, no affordances attach, and the items stay
// discovered. They are never re-enqueued.
func (s *Scheduler) Flush(ctx context.Context) {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	texts := make([]string, len(batch))
	for i, it := range batch {
		texts[i] = s.src.Text(it)
	}
	vctx := s.src.Context()

	result, err := s.extractor.Extract(ctx, vctx, texts)
	if err != nil {
		s.logf("flush: extraction failed for batch of %d: %v", len(batch), err)
		return
	}

	for _, entry := range result.PerItem {
		if entry.Index < 0 || entry.Index >= len(batch) {
			s.logf("flush: dropping out-of-range index %d", entry.Index)
			continue
		}
		if !eligible(entry.Claims) {
			continue
		}

		it := batch[entry.Index]
		it.SetExtraction(entry.Claims, result.Summary)
		if s.tracker.MarkAffordanceAttached(it) && s.attach != nil {
			s.attach(it)
		}
	}
}

// eligible reports whether a claim set contains at least one claim with a
// non-empty keyword list. Anything else receives no affordance.
func eligible(claims []model.Claim) bool {
	for _, c := range claims {
		if c.HasKeywords() {
			return true
		}
	}
	return false
}

func (s *Scheduler) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}
