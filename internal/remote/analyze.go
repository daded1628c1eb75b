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

const analyzePath = "/analyze"

// analyzeRequest is the deployed service contract: the claim plus its
// keywords, with the video context fields merged flat into the object.
// Field names and layout are preserved bit-for-bit against the service.
type analyzeRequest struct {
	Claim       string   `json:"claim"`
	Keyword     []string `json:"keyword"`
	Summary     string   `json:"summary,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Hashtags    []string `json:"hashtags"`
}

// analyzeResponse mirrors the service's JSON, including its historical
// spelling of "explaination".
type analyzeResponse struct {
	FactResult  *float64 `json:"fact_result"`
	Explanation string   `json:"explaination"`
	Articles    []struct {
		Title        string `json:"title"`
		Link         string `json:"link"`
		CoreSentence string `json:"core_sentence"`
	} `json:"related_articles"`
}

// AnalyzeClient talks to the per-claim analysis endpoint.
type AnalyzeClient struct {
	client  *http.Client
	baseURL string
	cache   cache.Cache // nil disables response caching
}

// NewAnalyzeClient creates an analysis client. cache may be nil.
func NewAnalyzeClient(baseURL string, client *http.Client, c cache.Cache) *AnalyzeClient {
	return &AnalyzeClient{client: client, baseURL: baseURL, cache: c}
}

// Analyze fact-checks one claim. Calls for different claims are independent;
// an error here concerns only this claim and the caller converts it to a
// failed per-claim result, never an aggregate failure.
func (a *AnalyzeClient) Analyze(ctx context.Context, claim string, keywords []string, summary string, vctx model.VideoContext) (model.AnalysisResult, error) {
	payload, err := json.Marshal(analyzeRequest{
		Claim:       claim,
		Keyword:     keywords,
		Summary:     summary,
		Title:       vctx.Title,
		Description: vctx.Description,
		Hashtags:    vctx.Hashtags,
	})
	if err != nil {
		return model.FailedResult(claim), fmt.Errorf("marshal request: %w", err)
	}

	key := cache.Key("analyze", payload)
	if a.cache != nil {
		if data, ok := a.cache.Get(key); ok {
			var cached model.AnalysisResult
			if json.Unmarshal(data, &cached) == nil {
				return cached, nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+analyzePath, bytes.NewReader(payload))
	if err != nil {
		return model.FailedResult(claim), fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return model.FailedResult(claim), fmt.Errorf("analyze: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.FailedResult(claim), fmt.Errorf("analyze: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.FailedResult(claim), fmt.Errorf("read body: %w", err)
	}

	var wire analyzeResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return model.FailedResult(claim), fmt.Errorf("decode analyze response: %w", err)
	}

	result := model.AnalysisResult{
		Claim:       claim,
		FactScore:   model.IndeterminateScore,
		Explanation: wire.Explanation,
	}
	if wire.FactResult != nil {
		result.FactScore = *wire.FactResult
	}
	for _, art := range wire.Articles {
		result.RelatedArticles = append(result.RelatedArticles, model.RelatedArticle{
			Title:        art.Title,
			Link:         art.Link,
			CoreSentence: art.CoreSentence,
		})
	}

	if a.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = a.cache.Set(key, data, 0)
		}
	}
	return result, nil
}
