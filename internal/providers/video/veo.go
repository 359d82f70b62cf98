// Package video generates short ad videos through asynchronous provider
// jobs.
package video

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/icecube7035-art/ADAI/internal/domain"
	"github.com/icecube7035-art/ADAI/internal/infra"
	"github.com/icecube7035-art/ADAI/internal/providers/genai"
)

// Asset is a fetched video binary ready to be registered as a blob.
type Asset struct {
	MimeType string
	Data     []byte
}

// Generator is the contract implemented by all video providers.
type Generator interface {
	Generate(ctx context.Context, req domain.CampaignRequest, aspect domain.AspectRatio) (*Asset, error)
}

// VeoOptions configures polling of the long-running job.
type VeoOptions struct {
	Model        string
	PollInterval time.Duration
	MaxAttempts  int
	Logger       *infra.Logger
}

// VeoGenerator submits a Veo job and polls it to completion on a fixed
// interval. The loop is bounded and honors ctx at every suspension point.
type VeoGenerator struct {
	client       *genai.Client
	model        string
	pollInterval time.Duration
	maxAttempts  int
	logger       *infra.Logger
}

const (
	defaultPollInterval = 10 * time.Second
	defaultMaxAttempts  = 90
)

func NewVeoGenerator(client *genai.Client, opts VeoOptions) *VeoGenerator {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	return &VeoGenerator{
		client:       client,
		model:        opts.Model,
		pollInterval: interval,
		maxAttempts:  attempts,
		logger:       opts.Logger,
	}
}

func buildMotionPrompt(req domain.CampaignRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A professional, dynamic video ad for %s.\n", req.ProductName)
	fmt.Fprintf(&b, "Theme: %s.\n", req.Tone)
	fmt.Fprintf(&b, "Content: %s.\n", req.Description)
	fmt.Fprintf(&b, "Targeted at: %s.\n", req.Audience)
	b.WriteString("Fast pacing, modern transitions, 1080p high quality.")
	return b.String()
}

func (g *VeoGenerator) Generate(ctx context.Context, req domain.CampaignRequest, aspect domain.AspectRatio) (*Asset, error) {
	op, err := g.client.StartVideoJob(ctx, g.model, buildMotionPrompt(req), genai.VideoConfig{
		NumberOfVideos: 1,
		Resolution:     "1080p",
		AspectRatio:    string(aspect),
	})
	if err != nil {
		return nil, err
	}

	op, err = g.await(ctx, op)
	if err != nil {
		return nil, err
	}

	uri := op.DownloadURI()
	if uri == "" {
		return nil, domain.NewGenerationError(domain.StageVideo, "video generation failed", nil)
	}

	data, mime, err := g.client.Download(ctx, uri)
	if err != nil {
		return nil, err
	}
	if mime == "" {
		mime = "video/mp4"
	}
	return &Asset{MimeType: mime, Data: data}, nil
}

// await polls the job until it reports done, the attempt bound is hit, or
// ctx is cancelled.
func (g *VeoGenerator) await(ctx context.Context, op *genai.Operation) (*genai.Operation, error) {
	name := op.Name
	for attempt := 0; !op.Done; attempt++ {
		if attempt >= g.maxAttempts {
			return nil, domain.NewGenerationError(domain.StageVideo, "video generation failed",
				fmt.Errorf("job %s not done after %d polls", name, g.maxAttempts))
		}

		select {
		case <-time.After(g.pollInterval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		var err error
		op, err = g.client.PollVideoJob(ctx, name)
		if err != nil {
			return nil, err
		}
		if g.logger != nil {
			g.logger.Debug().
				Str("operation", name).
				Int("attempt", attempt+1).
				Bool("done", op.Done).
				Msg("video: polled job status")
		}
	}
	return op, nil
}

var _ Generator = (*VeoGenerator)(nil)
