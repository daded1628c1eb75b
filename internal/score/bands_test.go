package score

import (
	"testing"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
)

func TestClassify_BandEdges(t *testing.T) {
	cases := []struct {
		score float64
		label string
		ok    bool
	}{
		{0, "very low", true},
		{19.999, "very low", true},
		{20, "low", true},
		{39.999, "low", true},
		{40, "mixed", true},
		{60, "high", true},
		{79.999, "high", true},
		{80, "very high", true},
		{99.999, "very high", true},
		{100, "very high", true}, // top band is closed at 100
		{-1, Unclassifiable.Label, false},
		{100.001, Unclassifiable.Label, false},
		{-0.001, Unclassifiable.Label, false},
	}

	for _, c := range cases {
		band, ok := Classify(c.score)
		if ok != c.ok {
			t.Errorf("Classify(%v): expected ok=%v, got %v", c.score, c.ok, ok)
		}
		if band.Label != c.label {
			t.Errorf("Classify(%v): expected label %q, got %q", c.score, c.label, band.Label)
		}
	}
}

func TestClassify_PartitionIsContiguous(t *testing.T) {
	table := Bands()
	if table[0].Min != 0 {
		t.Errorf("first band must start at 0, got %v", table[0].Min)
	}
	if table[len(table)-1].Max != 100 {
		t.Errorf("last band must end at 100, got %v", table[len(table)-1].Max)
	}
	for i := 1; i < len(table); i++ {
		if table[i].Min != table[i-1].Max {
			t.Errorf("gap between band %d and %d: %v != %v", i-1, i, table[i-1].Max, table[i].Min)
		}
	}
}

func TestFromFactScore(t *testing.T) {
	if got := FromFactScore(0.5); got != 50 {
		t.Errorf("expected 50, got %v", got)
	}
	if got := FromFactScore(1); got != 100 {
		t.Errorf("expected 100, got %v", got)
	}
	if got := FromFactScore(model.IndeterminateScore); got != -1 {
		t.Errorf("expected -1 sentinel to stay unclassifiable, got %v", got)
	}
	if got := FromFactScore(1.5); got != -1 {
		t.Errorf("expected out-of-range score to map to -1, got %v", got)
	}
}

func TestLabel(t *testing.T) {
	res := model.AnalysisResult{Claim: "x", FactScore: 0.9}
	if got := Label(res); got != "very high" {
		t.Errorf("expected 'very high', got %q", got)
	}

	failed := model.FailedResult("x")
	if got := Label(failed); got != Unclassifiable.Label {
		t.Errorf("expected %q for failed result, got %q", Unclassifiable.Label, got)
	}
}
