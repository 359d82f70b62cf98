package handlers

import (
	"net/http"

	"github.com/icecube7035-art/ADAI/internal/domain"
)

type catalogResponse struct {
	Platforms     []domain.Platform    `json:"platforms"`
	ImageSizes    []domain.ImageSize   `json:"image_sizes"`
	AspectRatios  []domain.AspectRatio `json:"aspect_ratios"`
	ToneExamples  []string             `json:"tone_examples"`
	MinVariations int                  `json:"min_variations"`
	MaxVariations int                  `json:"max_variations"`
}

// Catalog exposes the option lists a client needs to build the campaign
// form.
func (a *App) Catalog(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, catalogResponse{
		Platforms:     domain.Platforms,
		ImageSizes:    domain.ImageSizes,
		AspectRatios:  domain.AspectRatios,
		ToneExamples:  domain.ToneExamples,
		MinVariations: domain.MinVariations,
		MaxVariations: domain.MaxVariations,
	})
}
