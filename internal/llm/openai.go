package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider extracts claims through the OpenAI chat API.
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Extract runs one extraction request over the whole batch.
func (p *OpenAIProvider) Extract(ctx context.Context, vctx model.VideoContext, comments []string) (model.BatchResult, error) {
	if len(comments) == 0 {
		return model.BatchResult{}, nil
	}

	modelName := p.config.Model
	if modelName == "" {
		modelName = defaultOpenAIModel
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     modelName,
		MaxTokens: p.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(vctx, comments),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return model.BatchResult{}, fmt.Errorf("openai extraction: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.BatchResult{}, fmt.Errorf("openai extraction: empty response")
	}

	return parseExtraction(resp.Choices[0].Message.Content, len(comments))
}
