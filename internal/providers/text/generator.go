// Package text generates per-platform ad copy variations.
package text

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/icecube7035-art/ADAI/internal/domain"
)

// Result is the normalized output of a text generation call.
type Result struct {
	Variants  []domain.TextAdContent
	Citations []domain.Citation
}

// Generator is the contract implemented by all text-ad providers.
type Generator interface {
	Generate(ctx context.Context, req domain.CampaignRequest) (*Result, error)
}

// platformHints steer copy style per platform in the instruction.
var platformHints = map[domain.Platform]string{
	domain.PlatformInstagram: "Visual, hashtag usage",
	domain.PlatformFacebook:  "Conversational, community-oriented",
	domain.PlatformTikTok:    "Hook-heavy, casual",
	domain.PlatformYouTube:   "Narrative, benefit-led",
	domain.PlatformX:         "Punchy, under 280 characters",
	domain.PlatformLinkedIn:  "Professional, value-driven",
}

// buildInstruction embeds every campaign field plus per-platform style hints
// into a single natural-language instruction.
func buildInstruction(req domain.CampaignRequest) string {
	titler := cases.Title(language.English)

	names := make([]string, len(req.Platforms))
	for i, p := range req.Platforms {
		names[i] = string(p)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d distinct ad variations for the following:\n", req.Variations)
	fmt.Fprintf(&b, "Product: %s\n", req.ProductName)
	fmt.Fprintf(&b, "Description: %s\n", req.Description)
	fmt.Fprintf(&b, "Target Audience: %s\n", req.Audience)
	fmt.Fprintf(&b, "Tone: %s\n", titler.String(req.Tone))
	fmt.Fprintf(&b, "Call to Action: %s\n", req.CTA)
	if req.Budget != "" {
		fmt.Fprintf(&b, "Budget: %s\n", req.Budget)
	}
	fmt.Fprintf(&b, "Platforms: %s\n\n", strings.Join(names, ", "))
	b.WriteString("Provide each variation in a JSON format suitable for an advertising platform.\n")
	b.WriteString("Focus on the unique nuances of each platform:\n")
	for _, p := range req.Platforms {
		if hint, ok := platformHints[p]; ok {
			fmt.Fprintf(&b, "- %s: %s\n", p, hint)
		}
	}
	return b.String()
}

// parseVariants decodes the provider's structured response into variants,
// tolerating a markdown code fence around the JSON array.
func parseVariants(raw string) ([]domain.TextAdContent, error) {
	cleaned := stripCodeFence(raw)
	var variants []domain.TextAdContent
	if err := unmarshalStrictArray(cleaned, &variants); err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return nil, fmt.Errorf("empty variation array")
	}
	return variants, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
