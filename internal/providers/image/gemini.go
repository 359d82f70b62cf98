package image

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/icecube7035-art/ADAI/internal/domain"
	"github.com/icecube7035-art/ADAI/internal/providers/genai"
)

// GeminiProvider generates and edits images through generateContent calls
// that return inline image payloads.
type GeminiProvider struct {
	client        *genai.Client
	generateModel string
	editModel     string
}

func NewGeminiProvider(client *genai.Client, generateModel, editModel string) *GeminiProvider {
	return &GeminiProvider{client: client, generateModel: generateModel, editModel: editModel}
}

func buildVisualPrompt(req domain.CampaignRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Professional ad visual for %s.\n", req.ProductName)
	fmt.Fprintf(&b, "Context: %s.\n", req.Description)
	fmt.Fprintf(&b, "Aesthetic: %s.\n", req.Tone)
	fmt.Fprintf(&b, "Targeting: %s.\n", req.Audience)
	b.WriteString("Ensure no cluttered text. Minimalist, modern, high-contrast.")
	return b.String()
}

// Generate requests one image at the given resolution class and aspect
// ratio and returns it as a data URI.
func (p *GeminiProvider) Generate(ctx context.Context, req domain.CampaignRequest, size domain.ImageSize, aspect domain.AspectRatio) (string, error) {
	payload := genai.GenerateContentRequest{
		Contents: []genai.Content{{
			Role:  "user",
			Parts: []genai.Part{{Text: buildVisualPrompt(req)}},
		}},
		Tools: []genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		GenerationConfig: &genai.GenerationConfig{
			ImageConfig: &genai.ImageConfig{
				AspectRatio: string(aspect),
				ImageSize:   string(size),
			},
		},
	}

	resp, err := p.client.GenerateContent(ctx, p.generateModel, payload)
	if err != nil {
		return "", err
	}

	inline := genai.FirstInlineImage(resp)
	if inline == nil {
		return "", domain.NewGenerationError(domain.StageImage, "failed to generate image", nil)
	}
	data, err := base64.StdEncoding.DecodeString(inline.Data)
	if err != nil {
		return "", domain.NewGenerationError(domain.StageImage, "failed to generate image", err)
	}
	return DataURI(inline.MimeType, data), nil
}

// Edit resubmits an existing image alongside a free-text instruction and
// returns the revised image as a data URI.
func (p *GeminiProvider) Edit(ctx context.Context, dataURI, instruction string) (string, error) {
	mime, data, err := SplitDataURI(dataURI)
	if err != nil {
		return "", domain.NewGenerationError(domain.StageImageEdit, "failed to edit image", err)
	}

	payload := genai.GenerateContentRequest{
		Contents: []genai.Content{{
			Role: "user",
			Parts: []genai.Part{
				{InlineData: &genai.Blob{MimeType: mime, Data: base64.StdEncoding.EncodeToString(data)}},
				{Text: instruction},
			},
		}},
	}

	resp, err := p.client.GenerateContent(ctx, p.editModel, payload)
	if err != nil {
		return "", err
	}

	inline := genai.FirstInlineImage(resp)
	if inline == nil {
		return "", domain.NewGenerationError(domain.StageImageEdit, "failed to edit image", nil)
	}
	revised, err := base64.StdEncoding.DecodeString(inline.Data)
	if err != nil {
		return "", domain.NewGenerationError(domain.StageImageEdit, "failed to edit image", err)
	}
	return DataURI(inline.MimeType, revised), nil
}

var (
	_ Generator = (*GeminiProvider)(nil)
	_ Editor    = (*GeminiProvider)(nil)
)
