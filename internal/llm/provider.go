// Package llm implements direct LLM claim extraction, used in place of the
// remote batch-extraction endpoint when a provider is configured. Providers
// satisfy the same contract as the HTTP client, so the scheduler does not
// know which backend it is talking to.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
)

// Provider extracts claims from a batch of comments with an LLM.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Extract behaves like the remote extraction client: index k of the
	// result refers to comments[k].
	Extract(ctx context.Context, vctx model.VideoContext, comments []string) (model.BatchResult, error)
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens limits the response length
	MaxTokens int
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(m model.LLMConfig) Config {
	return Config{
		Provider:  m.Provider,
		Model:     m.Model,
		APIKey:    m.APIKey,
		BaseURL:   m.BaseURL,
		Timeout:   m.Timeout,
		MaxTokens: m.MaxTokens,
	}
}

// BuildPrompt constructs the extraction prompt: checkable claims with 3-6
// search keywords each, strict JSON output shaped like the normalized
// extraction response.
func BuildPrompt(vctx model.VideoContext, comments []string) string {
	var b strings.Builder

	b.WriteString("Extract the checkable factual claims from the video comments below.\n\n")
	fmt.Fprintf(&b, "Video title: %s\n", vctx.Title)
	fmt.Fprintf(&b, "Video description: %s\n", vctx.Description)
	if len(vctx.Hashtags) > 0 {
		fmt.Fprintf(&b, "Hashtags: %s\n", strings.Join(vctx.Hashtags, ", "))
	}

	b.WriteString("\nComments:\n")
	for i, c := range comments {
		fmt.Fprintf(&b, "%d. %s\n", i, c)
	}

	b.WriteString(`
Respond with JSON only, exactly this shape:
{"summary": "<one-sentence video context summary>", "perItem": [{"index": 0, "claims": [{"text": "<claim>", "keywords": ["<kw>", "<kw>", "<kw>"]}]}]}

Rules:
- 3 to 6 keywords per claim, suitable for a news search.
- Omit comments that contain no checkable factual claim.
- "index" refers to the comment's position in the list above.
- Return nothing but the JSON.`)

	return b.String()
}
