package infra

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents service configuration bound from environment variables.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`
	Port   string `envconfig:"PORT" default:"8080"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`

	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`
	GeminiBaseURL string `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta"`

	TextProvider   string `envconfig:"TEXT_PROVIDER" default:"gemini"`
	TextModel      string `envconfig:"TEXT_MODEL" default:"gemini-3-flash-preview"`
	ImageModel     string `envconfig:"IMAGE_MODEL" default:"gemini-3-pro-image-preview"`
	ImageEditModel string `envconfig:"IMAGE_EDIT_MODEL" default:"gemini-2.5-flash-image"`
	VideoModel     string `envconfig:"VIDEO_MODEL" default:"veo-3.1-fast-generate-preview"`

	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`

	VideoPollInterval time.Duration `envconfig:"VIDEO_POLL_INTERVAL" default:"10s"`
	VideoPollAttempts int           `envconfig:"VIDEO_POLL_ATTEMPTS" default:"90"`

	SessionTTL       time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	HTTPReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	HTTPWriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"20m"`
	HTTPIdleTimeout  time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s"`
}

// LoadConfig binds configuration from the environment and validates the
// combinations that would only fail at request time otherwise.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	switch strings.ToLower(cfg.TextProvider) {
	case "gemini", "openai":
		cfg.TextProvider = strings.ToLower(cfg.TextProvider)
	default:
		return nil, fmt.Errorf("unsupported TEXT_PROVIDER %q", cfg.TextProvider)
	}

	if cfg.TextProvider == "openai" && cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required when TEXT_PROVIDER=openai")
	}

	if cfg.VideoPollInterval <= 0 {
		return nil, fmt.Errorf("VIDEO_POLL_INTERVAL must be positive")
	}
	if cfg.VideoPollAttempts <= 0 {
		return nil, fmt.Errorf("VIDEO_POLL_ATTEMPTS must be positive")
	}

	return &cfg, nil
}
