package text

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/icecube7035-art/ADAI/internal/domain"
)

// OpenAIOptions configures the alternate OpenAI-backed text generator.
type OpenAIOptions struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIGenerator produces text ads through a JSON-mode chat completion.
// OpenAI has no schema-constrained array response, so the array contract is
// stated in the system prompt and enforced by parsing.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

const openAISystemPrompt = "You are an advertising copywriter. Respond with a JSON object " +
	`of the form {"variations": [{"platform": "...", "headline": "...", "body": "...", "cta": "..."}]} and nothing else.`

func NewOpenAIGenerator(opts OpenAIOptions) (*OpenAIGenerator, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	model := opts.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	return &OpenAIGenerator{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req domain.CampaignRequest) (*Result, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openAISystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildInstruction(req)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, domain.NewGenerationError(domain.StageText, "failed to generate text ads", errors.New("no completion choices"))
	}

	variants, err := parseOpenAIVariants(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, domain.NewGenerationError(domain.StageText, "failed to generate text ads", err)
	}
	// No grounding surface on this path.
	return &Result{Variants: variants}, nil
}

func parseOpenAIVariants(raw string) ([]domain.TextAdContent, error) {
	cleaned := stripCodeFence(raw)
	// JSON mode wraps the array in an object; a bare array is accepted too.
	if strings.HasPrefix(cleaned, "[") {
		return parseVariants(cleaned)
	}
	var envelope struct {
		Variations []domain.TextAdContent `json:"variations"`
	}
	if err := unmarshalEnvelope(cleaned, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Variations) == 0 {
		return nil, errors.New("empty variation array")
	}
	return envelope.Variations, nil
}

func unmarshalEnvelope(raw string, out any) error {
	if raw == "" {
		return errors.New("empty response text")
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("parse variation envelope: %w", err)
	}
	return nil
}

var _ Generator = (*OpenAIGenerator)(nil)
