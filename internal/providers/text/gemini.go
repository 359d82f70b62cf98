package text

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/icecube7035-art/ADAI/internal/domain"
	"github.com/icecube7035-art/ADAI/internal/providers/genai"
)

// adSchema constrains the response to an array of platform/headline/body/cta
// objects.
var adSchema = &genai.Schema{
	Type: "ARRAY",
	Items: &genai.Schema{
		Type: "OBJECT",
		Properties: map[string]*genai.Schema{
			"platform": {Type: "STRING"},
			"headline": {Type: "STRING"},
			"body":     {Type: "STRING"},
			"cta":      {Type: "STRING"},
		},
		Required: []string{"platform", "headline", "body", "cta"},
	},
}

// GeminiGenerator produces text ads through a schema-constrained
// generateContent call augmented with web-search grounding.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(client *genai.Client, model string) *GeminiGenerator {
	return &GeminiGenerator{client: client, model: model}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req domain.CampaignRequest) (*Result, error) {
	payload := genai.GenerateContentRequest{
		Contents: []genai.Content{{
			Role:  "user",
			Parts: []genai.Part{{Text: buildInstruction(req)}},
		}},
		Tools: []genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		GenerationConfig: &genai.GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   adSchema,
		},
	}

	resp, err := g.client.GenerateContent(ctx, g.model, payload)
	if err != nil {
		return nil, err
	}

	variants, err := parseVariants(genai.FirstText(resp))
	if err != nil {
		return nil, domain.NewGenerationError(domain.StageText, "failed to generate text ads", err)
	}

	var citations []domain.Citation
	for _, src := range genai.GroundingSources(resp) {
		citations = append(citations, domain.Citation{Title: src.Title, URI: src.URI})
	}

	return &Result{Variants: variants, Citations: citations}, nil
}

func unmarshalStrictArray(raw string, out *[]domain.TextAdContent) error {
	if raw == "" {
		return fmt.Errorf("empty response text")
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("parse variation array: %w", err)
	}
	return nil
}

var _ Generator = (*GeminiGenerator)(nil)
