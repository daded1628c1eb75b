// Package render displays fact-check results: a terminal renderer for live
// watching and a JSON report writer for one-shot checks.
package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/score"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/source"
)

// Term renders progress and per-claim results to a terminal writer.
type Term struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTerm creates a terminal renderer.
func NewTerm(w io.Writer) *Term {
	return &Term{w: w}
}

// Progress displays the busy indicator with its phase-labeled steps.
func (t *Term) Progress(item *source.Item, phases []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "⏳ %s\n", truncate(item.Text(), 70))
	for i, phase := range phases {
		fmt.Fprintf(t.w, "   %d. %s\n", i+1, phase)
	}
}

// Results displays the ordered per-claim results for one comment.
func (t *Term) Results(item *source.Item, results []model.AnalysisResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.w, "💬 %s\n", truncate(item.Text(), 70))
	for _, res := range results {
		if res.Failed {
			fmt.Fprintf(t.w, "   ✗ %s: check failed\n", truncate(res.Claim, 60))
			continue
		}

		label := score.Label(res)
		if pct := score.FromFactScore(res.FactScore); pct >= 0 {
			fmt.Fprintf(t.w, "   • %s: confidence %s (%.1f%%)\n", truncate(res.Claim, 60), label, pct)
		} else {
			fmt.Fprintf(t.w, "   • %s: %s\n", truncate(res.Claim, 60), label)
		}
		if res.Explanation != "" {
			fmt.Fprintf(t.w, "     %s\n", res.Explanation)
		}
		for _, art := range res.RelatedArticles {
			fmt.Fprintf(t.w, "     ↳ %s (%s)\n", art.Title, art.Link)
		}
	}
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
