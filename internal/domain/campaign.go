package domain

import "strings"

// Platform enumerates the ad platforms a campaign can target.
type Platform string

const (
	PlatformInstagram Platform = "Instagram"
	PlatformFacebook  Platform = "Facebook"
	PlatformTikTok    Platform = "TikTok"
	PlatformYouTube   Platform = "YouTube"
	PlatformX         Platform = "X (Twitter)"
	PlatformLinkedIn  Platform = "LinkedIn"
)

// Platforms lists every supported platform in display order.
var Platforms = []Platform{
	PlatformInstagram,
	PlatformFacebook,
	PlatformTikTok,
	PlatformYouTube,
	PlatformX,
	PlatformLinkedIn,
}

// ImageSize is a provider resolution class, not a pixel dimension.
type ImageSize string

const (
	ImageSize1K ImageSize = "1K"
	ImageSize2K ImageSize = "2K"
	ImageSize4K ImageSize = "4K"
)

var ImageSizes = []ImageSize{ImageSize1K, ImageSize2K, ImageSize4K}

// AspectRatio is passed through to the provider verbatim.
type AspectRatio string

var AspectRatios = []AspectRatio{
	"1:1", "3:4", "4:3", "9:16", "16:9", "2:3", "3:2", "21:9",
}

// ToneExamples seed the campaign form's tone field.
var ToneExamples = []string{
	"Professional and trust-worthy",
	"High-energy and exciting",
	"Minimalist and aesthetic",
	"Urgent and bold",
	"Warm and community-focused",
}

const (
	MinVariations = 1
	MaxVariations = 5
)

// CampaignRequest is the user's intent for one generation run. It is
// immutable once handed to the orchestrator and never persisted.
type CampaignRequest struct {
	ProductName string     `json:"product_name" validate:"required,max=120"`
	Description string     `json:"description" validate:"required,max=2000"`
	Audience    string     `json:"audience" validate:"required,max=500"`
	Tone        string     `json:"tone" validate:"required,max=200"`
	CTA         string     `json:"cta" validate:"required,max=120"`
	Budget      string     `json:"budget" validate:"max=120"`
	Platforms   []Platform `json:"platforms" validate:"required,min=1,dive,oneof=Instagram Facebook TikTok YouTube 'X (Twitter)' LinkedIn"`
	Variations  int        `json:"variations" validate:"min=0,max=5"`
}

// Normalize clamps the variation count to the supported range and trims
// free-text fields. The platform set is left to the validator.
func (r *CampaignRequest) Normalize() {
	if r.Variations < MinVariations {
		r.Variations = MinVariations
	}
	if r.Variations > MaxVariations {
		r.Variations = MaxVariations
	}
	r.ProductName = strings.TrimSpace(r.ProductName)
	r.Description = strings.TrimSpace(r.Description)
	r.Audience = strings.TrimSpace(r.Audience)
	r.Tone = strings.TrimSpace(r.Tone)
	r.CTA = strings.TrimSpace(r.CTA)
	r.Budget = strings.TrimSpace(r.Budget)
}

// FirstPlatform returns the first selected platform, falling back to
// Instagram for a request that slipped past validation empty.
func (r *CampaignRequest) FirstPlatform() Platform {
	if len(r.Platforms) > 0 {
		return r.Platforms[0]
	}
	return PlatformInstagram
}
