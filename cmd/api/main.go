package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/icecube7035-art/ADAI/internal/blob"
	"github.com/icecube7035-art/ADAI/internal/credentials"
	"github.com/icecube7035-art/ADAI/internal/gallery"
	"github.com/icecube7035-art/ADAI/internal/http/handlers"
	"github.com/icecube7035-art/ADAI/internal/http/httpapi"
	"github.com/icecube7035-art/ADAI/internal/infra"
	"github.com/icecube7035-art/ADAI/internal/metrics"
	"github.com/icecube7035-art/ADAI/internal/orchestrator"
	"github.com/icecube7035-art/ADAI/internal/providers/genai"
	"github.com/icecube7035-art/ADAI/internal/providers/image"
	"github.com/icecube7035-art/ADAI/internal/providers/text"
	"github.com/icecube7035-art/ADAI/internal/providers/video"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	creds := credentials.NewStore(cfg.GeminiAPIKey)

	client, err := genai.NewClient(genai.Options{
		Keys:    creds,
		BaseURL: cfg.GeminiBaseURL,
		Logger:  &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build genai client")
	}

	textGen, err := buildTextGenerator(cfg, client)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build text provider")
	}

	imageProvider := image.NewGeminiProvider(client, cfg.ImageModel, cfg.ImageEditModel)
	videoProvider := video.NewVeoGenerator(client, video.VeoOptions{
		Model:        cfg.VideoModel,
		PollInterval: cfg.VideoPollInterval,
		MaxAttempts:  cfg.VideoPollAttempts,
		Logger:       &logger,
	})

	blobs := blob.NewStore()
	sessions := gallery.NewManager(cfg.SessionTTL)
	go sessions.Janitor(ctx, time.Minute)

	orch := orchestrator.New(orchestrator.Options{
		Credentials: creds,
		Text:        textGen,
		Image:       imageProvider,
		Editor:      imageProvider,
		Video:       videoProvider,
		Blobs:       blobs,
		Metrics:     metrics.New(prometheus.DefaultRegisterer),
		Logger:      logger,
	})

	app := handlers.NewApp(logger, orch, sessions, blobs, creds)
	router := httpapi.NewRouter(cfg, logger, app, sessions)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

func buildTextGenerator(cfg *infra.Config, client *genai.Client) (text.Generator, error) {
	if cfg.TextProvider == "openai" {
		return text.NewOpenAIGenerator(text.OpenAIOptions{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
	}
	return text.NewGeminiGenerator(client, cfg.TextModel), nil
}
