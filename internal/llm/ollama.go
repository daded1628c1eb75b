package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
)

const defaultOllamaModel = "llama3.1"

// OllamaProvider extracts claims through a local Ollama instance.
type OllamaProvider struct {
	baseURL    string
	httpClient *http.Client
	config     Config
}

// Ollama API structures
type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaProvider creates a new Ollama provider. No API key is needed.
func NewOllamaProvider(config Config) (*OllamaProvider, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second // local models can be slow
	}

	return &OllamaProvider{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		config:     config,
	}, nil
}

// Name returns the provider name.
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Extract runs one extraction request over the whole batch.
func (p *OllamaProvider) Extract(ctx context.Context, vctx model.VideoContext, comments []string) (model.BatchResult, error) {
	if len(comments) == 0 {
		return model.BatchResult{}, nil
	}

	modelName := p.config.Model
	if modelName == "" {
		modelName = defaultOllamaModel
	}

	payload, err := json.Marshal(ollamaRequest{
		Model:  modelName,
		Prompt: BuildPrompt(vctx, comments),
		Stream: false,
		Format: "json",
	})
	if err != nil {
		return model.BatchResult{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return model.BatchResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return model.BatchResult{}, fmt.Errorf("ollama extraction: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.BatchResult{}, fmt.Errorf("ollama extraction: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.BatchResult{}, fmt.Errorf("read body: %w", err)
	}

	var wire ollamaResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return model.BatchResult{}, fmt.Errorf("decode ollama response: %w", err)
	}

	return parseExtraction(wire.Response, len(comments))
}
