// Package orchestrate runs the per-comment fact-check: one analysis call
// per cached claim, concurrently outstanding, joined into an ordered result
// set for the renderer.
package orchestrate

import (
	"context"
	"sync"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/source"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/track"
)

// Analyzer is the per-claim analysis backend.
type Analyzer interface {
	Analyze(ctx context.Context, claim string, keywords []string, summary string, vctx model.VideoContext) (model.AnalysisResult, error)
}

// Renderer is the consumed display capability.
type Renderer interface {
	// Progress displays a busy indicator with phase-labeled steps.
	Progress(item *source.Item, phases []string)

	// Results displays the ordered per-claim results for an item.
	Results(item *source.Item, results []model.AnalysisResult)
}

// Phases are the busy-indicator steps shown while a fan-out is running.
var Phases = []string{
	"extracting claims",
	"collecting related articles",
	"checking facts",
}

// Orchestrator fans out analysis calls for one item at a time, at most once
// per item.
type Orchestrator struct {
	analyzer Analyzer
	tracker  *track.Tracker
	renderer Renderer
	workers  int

	// Logf, when set, receives no-op diagnostics.
	Logf func(format string, args ...any)
}

// New creates an orchestrator. workers bounds the number of concurrently
// outstanding analysis calls per fan-out; <= 0 means unbounded. A nil
// renderer collects results without displaying them.
func New(analyzer Analyzer, tracker *track.Tracker, renderer Renderer, workers int) *Orchestrator {
	return &Orchestrator{
		analyzer: analyzer,
		tracker:  tracker,
		renderer: renderer,
		workers:  workers,
	}
}

// Analyze consumes the item's affordance and fact-checks its cached claims.
// It is triggered at most once per item: a second activation, an item with
// no cached claims, or an item that never got an affordance is a no-op
// diagnostic, not a render.
//
// Every cached claim yields exactly one entry in the returned result set,
// in claim order; a failed call is flagged on its own entry and never
// affects sibling claims.
func (o *Orchestrator) Analyze(ctx context.Context, item *source.Item, vctx model.VideoContext) ([]model.AnalysisResult, bool) {
	claims, summary, ok := o.tryConsume(item)
	if !ok {
		return nil, false
	}

	if o.renderer != nil {
		o.renderer.Progress(item, Phases)
	}
	results := o.fanOut(ctx, claims, summary, vctx)
	if o.renderer != nil {
		o.renderer.Results(item, results)
	}
	return results, true
}

// tryConsume checks the preconditions and consumes the affordance.
func (o *Orchestrator) tryConsume(item *source.Item) ([]model.Claim, string, bool) {
	claims, summary, cached := item.Extraction()
	if !cached || len(claims) == 0 {
		o.logf("analyze: item has no cached claims, skipping")
		return nil, "", false
	}
	if !o.tracker.ConsumeAffordance(item) {
		o.logf("analyze: affordance already consumed, skipping")
		return nil, "", false
	}
	return claims, summary, true
}

// fanOut issues one analysis call per claim and waits for all of them to
// settle. Results land in per-index slots, so ordering follows the claim
// order regardless of completion order.
func (o *Orchestrator) fanOut(ctx context.Context, claims []model.Claim, summary string, vctx model.VideoContext) []model.AnalysisResult {
	results := make([]model.AnalysisResult, len(claims))

	var sem chan struct{}
	if o.workers > 0 {
		sem = make(chan struct{}, o.workers)
	}

	var wg sync.WaitGroup
	for i, claim := range claims {
		wg.Add(1)
		go func(idx int, c model.Claim) {
			defer wg.Done()

			if sem != nil {
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-ctx.Done():
					results[idx] = model.FailedResult(c.Text)
					return
				}
			}

			res, err := o.analyzer.Analyze(ctx, c.Text, c.Keywords, summary, vctx)
			if err != nil {
				o.logf("analyze: claim %d failed: %v", idx, err)
				results[idx] = model.FailedResult(c.Text)
				return
			}
			results[idx] = res
		}(i, claim)
	}
	wg.Wait()

	return results
}

func (o *Orchestrator) logf(format string, args ...any) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}
