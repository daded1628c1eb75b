package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/cache"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
)

func testContext() model.VideoContext {
	return model.VideoContext{
		Title:       "Tariffs explained",
		Description: "What tariffs mean for trade.",
		Hashtags:    []string{"economy"},
	}
}

func TestExtract_RequestPayload(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/batch_extract" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"summary":"s","perItem":[]}`))
	}))
	defer srv.Close()

	c := NewExtractClient(srv.URL, srv.Client(), nil)
	if _, err := c.Extract(context.Background(), testContext(), []string{"one", "two"}); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	vctx, ok := captured["videoContext"].(map[string]any)
	if !ok {
		t.Fatalf("missing videoContext in payload: %v", captured)
	}
	if vctx["title"] != "Tariffs explained" {
		t.Errorf("unexpected title %v", vctx["title"])
	}
	comments, ok := captured["comments"].([]any)
	if !ok || len(comments) != 2 || comments[0] != "one" {
		t.Errorf("unexpected comments %v", captured["comments"])
	}
}

func TestExtract_NormalizesAllShapes(t *testing.T) {
	shapes := map[string]string{
		"normalized":   `{"summary":"ctx","perItem":[{"index":1,"claims":[{"text":"c1","keywords":["k1"]}]}]}`,
		"legacyNested": `{"summary":"ctx","claims":[{"index":1,"claims":[{"claim":"c1","keywords":["k1"]}]}]}`,
		"legacyArray":  `[{"index":1,"claims":[{"claim":"c1","keywords":["k1"]}]}]`,
	}

	for name, body := range shapes {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			c := NewExtractClient(srv.URL, srv.Client(), nil)
			res, err := c.Extract(context.Background(), testContext(), []string{"a", "b"})
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}

			if len(res.PerItem) != 1 {
				t.Fatalf("expected 1 per-item entry, got %d", len(res.PerItem))
			}
			entry := res.PerItem[0]
			if entry.Index != 1 {
				t.Errorf("expected index 1, got %d", entry.Index)
			}
			if len(entry.Claims) != 1 || entry.Claims[0].Text != "c1" {
				t.Errorf("unexpected claims %v", entry.Claims)
			}
			if len(entry.Claims[0].Keywords) != 1 || entry.Claims[0].Keywords[0] != "k1" {
				t.Errorf("unexpected keywords %v", entry.Claims[0].Keywords)
			}
			if name != "legacyArray" && res.Summary != "ctx" {
				t.Errorf("expected summary to survive, got %q", res.Summary)
			}
		})
	}
}

func TestExtract_FailsClosed(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status500": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"malformed": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"perItem": "not an array"`))
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()

			c := NewExtractClient(srv.URL, srv.Client(), nil)
			res, err := c.Extract(context.Background(), testContext(), []string{"a"})
			if err == nil {
				t.Error("expected a diagnostic error")
			}
			if !res.Empty() {
				t.Errorf("expected the empty result, got %+v", res)
			}
		})
	}
}

func TestExtract_EmptyBatchSkipsCall(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := NewExtractClient(srv.URL, srv.Client(), nil)
	res, err := c.Extract(context.Background(), testContext(), nil)
	if err != nil || !res.Empty() {
		t.Errorf("expected empty result without error, got %+v, %v", res, err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("expected no HTTP call for an empty batch")
	}
}

func TestExtract_CachesResponses(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"summary":"s","perItem":[{"index":0,"claims":[{"text":"c","keywords":["k"]}]}]}`))
	}))
	defer srv.Close()

	c := NewExtractClient(srv.URL, srv.Client(), cache.NewMemoryCache(time.Minute, time.Minute))

	first, err := c.Extract(context.Background(), testContext(), []string{"a"})
	if err != nil {
		t.Fatalf("first Extract: %v", err)
	}
	second, err := c.Extract(context.Background(), testContext(), []string{"a"})
	if err != nil {
		t.Fatalf("second Extract: %v", err)
	}

	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("expected 1 upstream call, got %d", calls)
	}
	if len(second.PerItem) != len(first.PerItem) || second.Summary != first.Summary {
		t.Errorf("cached result diverged: %+v vs %+v", second, first)
	}
}
