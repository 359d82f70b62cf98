package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// AdKind enumerates generated creative types.
type AdKind string

const (
	AdKindText  AdKind = "TEXT"
	AdKindImage AdKind = "IMAGE"
	AdKindVideo AdKind = "VIDEO"
)

// Citation is a web-grounding reference attached to text ads.
type Citation struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// AdMetadata carries optional, kind-specific extras.
type AdMetadata struct {
	ImageSize   ImageSize   `json:"image_size,omitempty"`
	AspectRatio AspectRatio `json:"aspect_ratio,omitempty"`
	Grounding   []Citation  `json:"grounding,omitempty"`
}

// Ad is one produced creative. Content's shape follows Kind: text ads carry
// a serialized TextAdContent, image and video ads carry a dereferenceable
// resource locator (data URI or blob URL).
type Ad struct {
	ID        string      `json:"id"`
	Kind      AdKind      `json:"kind"`
	Platform  Platform    `json:"platform"`
	Content   string      `json:"content"`
	Metadata  *AdMetadata `json:"metadata,omitempty"`
	CreatedAt int64       `json:"created_at"`
}

// TextAdContent is the structured payload serialized into a TEXT ad's
// content field.
type TextAdContent struct {
	Platform string `json:"platform"`
	Headline string `json:"headline"`
	Body     string `json:"body"`
	CTA      string `json:"cta"`
}

// Encode serializes the payload for storage in Ad.Content.
func (t TextAdContent) Encode() string {
	raw, err := json.Marshal(t)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

// TextAdID builds the identifier of the i-th text variation of a batch.
func TextAdID(at time.Time, i int) string {
	return fmt.Sprintf("text-%d-%d", at.UnixMilli(), i)
}

// ImageAdID builds the identifier of a batch's image ad.
func ImageAdID(at time.Time) string {
	return fmt.Sprintf("img-%d", at.UnixMilli())
}

// VideoAdID builds the identifier of a batch's video ad.
func VideoAdID(at time.Time) string {
	return fmt.Sprintf("vid-%d", at.UnixMilli())
}
