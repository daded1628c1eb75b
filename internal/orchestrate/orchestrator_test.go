package orchestrate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/source"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/track"
)

type fakeAnalyzer struct {
	mu      sync.Mutex
	calls   int
	failOn  map[string]bool
	scoreOf map[string]float64
}

func (f *fakeAnalyzer) Analyze(_ context.Context, claim string, _ []string, _ string, _ model.VideoContext) (model.AnalysisResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.failOn[claim] {
		return model.FailedResult(claim), errors.New("analysis backend down")
	}
	score := 0.5
	if s, ok := f.scoreOf[claim]; ok {
		score = s
	}
	return model.AnalysisResult{Claim: claim, FactScore: score}, nil
}

type fakeRenderer struct {
	mu       sync.Mutex
	progress [][]string
	rendered [][]model.AnalysisResult
}

func (f *fakeRenderer) Progress(_ *source.Item, phases []string) {
	f.mu.Lock()
	f.progress = append(f.progress, phases)
	f.mu.Unlock()
}

func (f *fakeRenderer) Results(_ *source.Item, results []model.AnalysisResult) {
	f.mu.Lock()
	f.rendered = append(f.rendered, results)
	f.mu.Unlock()
}

func preparedItem(tr *track.Tracker, claims ...model.Claim) *source.Item {
	it := source.NewItem("the comment")
	it.SetExtraction(claims, "summary")
	tr.MarkDiscovered(it)
	tr.MarkAffordanceAttached(it)
	return it
}

func TestAnalyze_FanOutIsolatesFailures(t *testing.T) {
	tr := track.New()
	item := preparedItem(tr,
		model.Claim{Text: "claim-a", Keywords: []string{"a"}},
		model.Claim{Text: "claim-b", Keywords: []string{"b"}},
		model.Claim{Text: "claim-c", Keywords: []string{"c"}},
	)

	analyzer := &fakeAnalyzer{
		failOn:  map[string]bool{"claim-b": true},
		scoreOf: map[string]float64{"claim-a": 0.9, "claim-c": 0.1},
	}
	renderer := &fakeRenderer{}
	o := New(analyzer, tr, renderer, 2)

	if _, ok := o.Analyze(context.Background(), item, model.VideoContext{}); !ok {
		t.Fatal("expected the first activation to run")
	}

	if len(renderer.rendered) != 1 {
		t.Fatalf("expected one render, got %d", len(renderer.rendered))
	}
	results := renderer.rendered[0]
	if len(results) != 3 {
		t.Fatalf("expected 3 results (failure included), got %d", len(results))
	}

	// Ordered by claim order, not completion order.
	if results[0].Claim != "claim-a" || results[1].Claim != "claim-b" || results[2].Claim != "claim-c" {
		t.Errorf("results out of claim order: %v", results)
	}
	if results[0].Failed || results[2].Failed {
		t.Error("sibling claims must not inherit the failure")
	}
	if !results[1].Failed {
		t.Error("the failed claim must be flagged")
	}
	if results[0].FactScore != 0.9 || results[2].FactScore != 0.1 {
		t.Errorf("unexpected scores: %v, %v", results[0].FactScore, results[2].FactScore)
	}
}

func TestAnalyze_ShowsProgressPhases(t *testing.T) {
	tr := track.New()
	item := preparedItem(tr, model.Claim{Text: "c", Keywords: []string{"k"}})
	renderer := &fakeRenderer{}
	o := New(&fakeAnalyzer{}, tr, renderer, 0)

	o.Analyze(context.Background(), item, model.VideoContext{})

	if len(renderer.progress) != 1 {
		t.Fatalf("expected one progress display, got %d", len(renderer.progress))
	}
	if len(renderer.progress[0]) == 0 {
		t.Error("expected phase-labeled steps")
	}
}

func TestAnalyze_AtMostOncePerItem(t *testing.T) {
	tr := track.New()
	item := preparedItem(tr, model.Claim{Text: "c", Keywords: []string{"k"}})
	analyzer := &fakeAnalyzer{}
	renderer := &fakeRenderer{}
	o := New(analyzer, tr, renderer, 0)

	if _, ok := o.Analyze(context.Background(), item, model.VideoContext{}); !ok {
		t.Fatal("expected first activation to run")
	}
	if _, ok := o.Analyze(context.Background(), item, model.VideoContext{}); ok {
		t.Fatal("expected re-activation to be a no-op")
	}
	if analyzer.calls != 1 {
		t.Errorf("expected 1 analysis call, got %d", analyzer.calls)
	}
	if len(renderer.rendered) != 1 {
		t.Errorf("expected 1 render, got %d", len(renderer.rendered))
	}
}

func TestAnalyze_NoCachedClaimsIsNoop(t *testing.T) {
	tr := track.New()
	item := source.NewItem("no extraction yet")
	tr.MarkDiscovered(item)
	tr.MarkAffordanceAttached(item)

	renderer := &fakeRenderer{}
	o := New(&fakeAnalyzer{}, tr, renderer, 0)

	if _, ok := o.Analyze(context.Background(), item, model.VideoContext{}); ok {
		t.Fatal("expected a no-op for an item without cached claims")
	}
	if len(renderer.rendered) != 0 {
		t.Error("a no-op must not render")
	}

	// The affordance was not consumed by the failed precondition.
	item.SetExtraction([]model.Claim{{Text: "c", Keywords: []string{"k"}}}, "s")
	if _, ok := o.Analyze(context.Background(), item, model.VideoContext{}); !ok {
		t.Error("expected activation to work once claims are cached")
	}
}

func TestAnalyze_NoAffordanceIsNoop(t *testing.T) {
	tr := track.New()
	item := source.NewItem("never flushed eligibly")
	item.SetExtraction([]model.Claim{{Text: "c", Keywords: []string{"k"}}}, "s")

	o := New(&fakeAnalyzer{}, tr, &fakeRenderer{}, 0)
	if _, ok := o.Analyze(context.Background(), item, model.VideoContext{}); ok {
		t.Fatal("expected a no-op for an item without an attached affordance")
	}
}
