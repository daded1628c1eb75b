package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/cache"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
)

const extractPath = "/batch_extract"

type extractRequest struct {
	VideoContext model.VideoContext `json:"videoContext"`
	Comments     []string           `json:"comments"`
}

// ExtractClient talks to the batch claim-extraction endpoint.
type ExtractClient struct {
	client  *http.Client
	baseURL string
	cache   cache.Cache // nil disables response caching
}

// NewExtractClient creates an extraction client. cache may be nil.
func NewExtractClient(baseURL string, client *http.Client, c cache.Cache) *ExtractClient {
	return &ExtractClient{client: client, baseURL: baseURL, cache: c}
}

// Extract submits one batch of comment texts with the page context and
// returns the normalized per-comment claim sets. Index k of the result
// refers to texts[k].
//
// The client fails closed: any transport, status or parse failure yields
// the empty BatchResult. The error is returned for diagnostics only;
// callers must treat an empty result as "nothing eligible this cycle",
// never as a retryable condition.
func (e *ExtractClient) Extract(ctx context.Context, vctx model.VideoContext, texts []string) (model.BatchResult, error) {
	if len(texts) == 0 {
		return model.BatchResult{}, nil
	}

	payload, err := json.Marshal(extractRequest{VideoContext: vctx, Comments: texts})
	if err != nil {
		return model.BatchResult{}, fmt.Errorf("marshal request: %w", err)
	}

	key := cache.Key("extract", payload)
	if e.cache != nil {
		if data, ok := e.cache.Get(key); ok {
			var cached model.BatchResult
			if json.Unmarshal(data, &cached) == nil {
				return cached, nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+extractPath, bytes.NewReader(payload))
	if err != nil {
		return model.BatchResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return model.BatchResult{}, fmt.Errorf("batch_extract: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.BatchResult{}, fmt.Errorf("batch_extract: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.BatchResult{}, fmt.Errorf("read body: %w", err)
	}

	result, err := DecodeBatch(body)
	if err != nil {
		return model.BatchResult{}, fmt.Errorf("decode batch_extract response: %w", err)
	}

	if e.cache != nil && !result.Empty() {
		if data, err := json.Marshal(result); err == nil {
			_ = e.cache.Set(key, data, 0)
		}
	}
	return result, nil
}
