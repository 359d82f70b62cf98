// Package image generates and edits still ad visuals.
package image

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/icecube7035-art/ADAI/internal/domain"
)

// Generator is the contract implemented by all image providers.
type Generator interface {
	Generate(ctx context.Context, req domain.CampaignRequest, size domain.ImageSize, aspect domain.AspectRatio) (string, error)
}

// Editor revises an existing image with a free-text instruction.
type Editor interface {
	Edit(ctx context.Context, dataURI, instruction string) (string, error)
}

// DataURI encodes an inline payload as a directly renderable reference.
func DataURI(mime string, data []byte) string {
	if mime == "" {
		mime = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

// SplitDataURI decomposes a data URI into its media type and raw payload.
func SplitDataURI(uri string) (mime string, data []byte, err error) {
	const scheme = "data:"
	if !strings.HasPrefix(uri, scheme) {
		return "", nil, fmt.Errorf("not a data URI")
	}
	header, payload, found := strings.Cut(uri[len(scheme):], ",")
	if !found {
		return "", nil, fmt.Errorf("malformed data URI")
	}
	mime = strings.TrimSuffix(header, ";base64")
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI payload: %w", err)
	}
	return mime, data, nil
}
