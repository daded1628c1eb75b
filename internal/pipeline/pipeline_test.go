package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/source"
)

// newBackend serves both the batch extraction and per-claim analysis
// endpoints the pipeline talks to.
func newBackend(t *testing.T, analyzeCalls *atomic.Int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/batch_extract", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Comments []string `json:"comments"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp := map[string]any{"summary": "a video about the moon"}
		var perItem []map[string]any
		for i, text := range req.Comments {
			if text == "no claims here" {
				continue
			}
			perItem = append(perItem, map[string]any{
				"index": i,
				"claims": []map[string]any{
					{"claim": text, "keywords": []string{"moon"}},
				},
			})
		}
		resp["perItem"] = perItem
		json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		if analyzeCalls != nil {
			analyzeCalls.Add(1)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"fact_result":  0.8,
			"explaination": "mostly true",
			"related_articles": []map[string]any{
				{"title": "Moon facts", "link": "https://example.com/moon"},
			},
		})
	})
	return httptest.NewServer(mux)
}

func testConfig(baseURL string) *model.Config {
	cfg := model.DefaultConfig()
	cfg.API.BaseURL = baseURL
	cfg.Cache.Enabled = false
	cfg.Scheduler.QuietPeriod = 20 * time.Millisecond
	return cfg
}

func TestCheckAllProducesFullReport(t *testing.T) {
	var analyzeCalls atomic.Int32
	server := newBackend(t, &analyzeCalls)
	defer server.Close()

	src := source.NewMemory(
		model.VideoContext{Title: "Moon landing"},
		"the moon is made of cheese",
		"no claims here",
		"the landing was filmed in 1969",
	)

	p := New(testConfig(server.URL), src, nil, false)
	report := p.CheckAll(context.Background())

	if len(report.Comments) != 3 {
		t.Fatalf("expected 3 comments in report, got %d", len(report.Comments))
	}
	if report.Summary != "a video about the moon" {
		t.Errorf("unexpected summary %q", report.Summary)
	}
	if report.Context.Title != "Moon landing" {
		t.Errorf("unexpected context title %q", report.Context.Title)
	}
	if report.Checked() != 2 {
		t.Errorf("expected 2 checked comments, got %d", report.Checked())
	}
	if got := analyzeCalls.Load(); got != 2 {
		t.Errorf("expected 2 analysis calls, got %d", got)
	}

	// The claimless comment still appears, just without results.
	middle := report.Comments[1]
	if middle.Text != "no claims here" || len(middle.Results) != 0 {
		t.Errorf("claimless comment mishandled: %+v", middle)
	}

	first := report.Comments[0]
	if len(first.Results) != 1 {
		t.Fatalf("expected 1 result on first comment, got %d", len(first.Results))
	}
	if first.Results[0].FactScore != 0.8 {
		t.Errorf("expected fact score 0.8, got %v", first.Results[0].FactScore)
	}
	if len(first.Results[0].RelatedArticles) != 1 {
		t.Errorf("expected 1 related article, got %d", len(first.Results[0].RelatedArticles))
	}
}

func TestCheckAllSecondPassDoesNotReanalyze(t *testing.T) {
	var analyzeCalls atomic.Int32
	server := newBackend(t, &analyzeCalls)
	defer server.Close()

	src := source.NewMemory(model.VideoContext{}, "the moon is made of cheese")
	p := New(testConfig(server.URL), src, nil, false)

	p.CheckAll(context.Background())
	report := p.CheckAll(context.Background())

	if got := analyzeCalls.Load(); got != 1 {
		t.Fatalf("expected the single claim to be analyzed once, got %d calls", got)
	}
	// Claims stay in the report even when analysis is not repeated.
	if len(report.Comments) != 1 || len(report.Comments[0].Claims) != 1 {
		t.Fatalf("expected cached claims in second report: %+v", report.Comments)
	}
}

func TestWatchModeAnalyzesNewItems(t *testing.T) {
	var analyzeCalls atomic.Int32
	server := newBackend(t, &analyzeCalls)
	defer server.Close()

	src := source.NewMemory(model.VideoContext{}, "the moon is made of cheese")
	p := New(testConfig(server.URL), src, nil, true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	// Give discovery, the quiet period and the analysis fan-out time to run.
	deadline := time.Now().Add(2 * time.Second)
	for analyzeCalls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	src.Add("the landing was filmed in 1969")
	deadline = time.Now().Add(2 * time.Second)
	for analyzeCalls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	if got := analyzeCalls.Load(); got != 2 {
		t.Fatalf("expected 2 analysis calls across both discoveries, got %d", got)
	}
}
