// Package orchestrator runs one campaign submission end to end and decides
// what the caller sees on success or failure.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/icecube7035-art/ADAI/internal/blob"
	"github.com/icecube7035-art/ADAI/internal/credentials"
	"github.com/icecube7035-art/ADAI/internal/domain"
	"github.com/icecube7035-art/ADAI/internal/gallery"
	"github.com/icecube7035-art/ADAI/internal/infra"
	"github.com/icecube7035-art/ADAI/internal/metrics"
	"github.com/icecube7035-art/ADAI/internal/providers/genai"
	"github.com/icecube7035-art/ADAI/internal/providers/image"
	"github.com/icecube7035-art/ADAI/internal/providers/text"
	"github.com/icecube7035-art/ADAI/internal/providers/video"
)

// Fixed defaults for the image and video stages. The form never exposes
// these; they mirror the product's one-size pipeline.
const (
	defaultImageSize   = domain.ImageSize1K
	defaultImageAspect = domain.AspectRatio("1:1")
	defaultVideoAspect = domain.AspectRatio("16:9")
)

// videoPlatform tags every video ad regardless of the campaign's selection.
const videoPlatform = domain.PlatformYouTube

// Orchestrator sequences the three generation calls for one submission and
// aggregates the results.
type Orchestrator struct {
	creds  credentials.Resolver
	text   text.Generator
	image  image.Generator
	editor image.Editor
	video  video.Generator
	blobs  *blob.Store
	met    *metrics.Metrics
	logger infra.Logger
	now    func() time.Time
}

// Options wires an Orchestrator. Every field is required except Now.
type Options struct {
	Credentials credentials.Resolver
	Text        text.Generator
	Image       image.Generator
	Editor      image.Editor
	Video       video.Generator
	Blobs       *blob.Store
	Metrics     *metrics.Metrics
	Logger      infra.Logger
	Now         func() time.Time
}

func New(opts Options) *Orchestrator {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		creds:  opts.Credentials,
		text:   opts.Text,
		image:  opts.Image,
		editor: opts.Editor,
		video:  opts.Video,
		blobs:  opts.Blobs,
		met:    opts.Metrics,
		logger: opts.Logger,
		now:    now,
	}
}

// RunCampaign executes text, image, and video generation strictly in that
// order, wraps each result into an Ad, and appends the whole batch to the
// session gallery. No partial results are kept: a failure at any stage
// discards the run. Every stage is attempted exactly once.
func (o *Orchestrator) RunCampaign(ctx context.Context, session *gallery.Session, req domain.CampaignRequest) ([]domain.Ad, error) {
	// The credential is resolved fresh per submission attempt; absence is a
	// recoverable condition and no generation call is made.
	if _, ok := o.creds.APIKey(); !ok {
		return nil, domain.ErrCredentialRequired
	}

	if !session.TryBeginRun() {
		return nil, domain.ErrRunInFlight
	}
	defer session.EndRun()

	req.Normalize()

	ads, err := o.generate(ctx, req)
	if err != nil {
		o.met.CampaignRuns.WithLabelValues("failed").Inc()
		return nil, o.classify(err)
	}

	session.Gallery.Prepend(ads)
	o.met.CampaignRuns.WithLabelValues("succeeded").Inc()
	o.logger.Info().
		Str("session", session.ID).
		Int("assets", len(ads)).
		Str("product", req.ProductName).
		Msg("orchestrator: campaign run completed")
	return ads, nil
}

func (o *Orchestrator) generate(ctx context.Context, req domain.CampaignRequest) ([]domain.Ad, error) {
	results := make([]domain.Ad, 0, req.Variations+2)

	textStart := o.now()
	textResult, err := o.text.Generate(ctx, req)
	o.observe(domain.StageText, textStart)
	if err != nil {
		return nil, err
	}
	batch := o.now()
	var meta *domain.AdMetadata
	if len(textResult.Citations) > 0 {
		meta = &domain.AdMetadata{Grounding: textResult.Citations}
	}
	for i, variant := range textResult.Variants {
		results = append(results, domain.Ad{
			ID:        domain.TextAdID(batch, i),
			Kind:      domain.AdKindText,
			Platform:  domain.Platform(variant.Platform),
			Content:   variant.Encode(),
			Metadata:  meta,
			CreatedAt: batch.UnixMilli(),
		})
	}

	imageStart := o.now()
	imageURI, err := o.image.Generate(ctx, req, defaultImageSize, defaultImageAspect)
	o.observe(domain.StageImage, imageStart)
	if err != nil {
		return nil, err
	}
	imageAt := o.now()
	results = append(results, domain.Ad{
		ID:       domain.ImageAdID(imageAt),
		Kind:     domain.AdKindImage,
		Platform: req.FirstPlatform(),
		Content:  imageURI,
		Metadata: &domain.AdMetadata{
			ImageSize:   defaultImageSize,
			AspectRatio: defaultImageAspect,
		},
		CreatedAt: imageAt.UnixMilli(),
	})

	videoStart := o.now()
	videoAsset, err := o.video.Generate(ctx, req, defaultVideoAspect)
	o.observe(domain.StageVideo, videoStart)
	if err != nil {
		return nil, err
	}
	blobID, err := o.blobs.Put(videoAsset.MimeType, videoAsset.Data)
	if err != nil {
		return nil, domain.NewGenerationError(domain.StageVideo, "video generation failed", err)
	}
	videoAt := o.now()
	results = append(results, domain.Ad{
		ID:       domain.VideoAdID(videoAt),
		Kind:     domain.AdKindVideo,
		Platform: videoPlatform,
		Content:  "/v1/blobs/" + blobID,
		Metadata: &domain.AdMetadata{
			AspectRatio: defaultVideoAspect,
		},
		CreatedAt: videoAt.UnixMilli(),
	})

	return results, nil
}

// EditAd revises an IMAGE ad's content in place. On failure the stored
// content is left untouched.
func (o *Orchestrator) EditAd(ctx context.Context, session *gallery.Session, adID, instruction string) (domain.Ad, error) {
	if _, ok := o.creds.APIKey(); !ok {
		return domain.Ad{}, domain.ErrCredentialRequired
	}

	ad, ok := session.Gallery.Get(adID)
	if !ok {
		return domain.Ad{}, domain.ErrNotFound
	}
	if ad.Kind != domain.AdKindImage {
		return domain.Ad{}, domain.NewGenerationError(domain.StageImageEdit, "failed to edit image",
			errors.New("only image ads can be edited"))
	}

	start := o.now()
	revised, err := o.editor.Edit(ctx, ad.Content, instruction)
	o.observe(domain.StageImageEdit, start)
	if err != nil {
		o.met.AssetEdits.WithLabelValues("failed").Inc()
		return domain.Ad{}, o.classify(err)
	}

	session.Gallery.ReplaceContent(adID, revised)
	o.met.AssetEdits.WithLabelValues("succeeded").Inc()
	ad.Content = revised
	return ad, nil
}

// classify maps provider rejections into the error taxonomy. A NOT_FOUND
// rejection (the provider's signal for a missing billing entity behind the
// key) is treated as a recoverable credential condition; everything else
// passes through for the transport layer to surface generically.
func (o *Orchestrator) classify(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && apiErr.EntityNotFound() {
		o.logger.Warn().Err(err).Msg("orchestrator: provider rejected entity, treating as missing credential")
		return domain.ErrCredentialRequired
	}
	return err
}

func (o *Orchestrator) observe(stage domain.GenerationStage, start time.Time) {
	o.met.StageDuration.WithLabelValues(string(stage)).Observe(o.now().Sub(start).Seconds())
}
