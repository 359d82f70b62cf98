package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/icecube7035-art/ADAI/internal/blob"
	"github.com/icecube7035-art/ADAI/internal/credentials"
	"github.com/icecube7035-art/ADAI/internal/gallery"
	"github.com/icecube7035-art/ADAI/internal/infra"
	"github.com/icecube7035-art/ADAI/internal/orchestrator"
)

// App is the handler container holding everything the routes need.
type App struct {
	Logger       infra.Logger
	Orchestrator *orchestrator.Orchestrator
	Sessions     *gallery.Manager
	Blobs        *blob.Store
	Credentials  *credentials.Store

	validate *validator.Validate
}

func NewApp(logger infra.Logger, orch *orchestrator.Orchestrator, sessions *gallery.Manager, blobs *blob.Store, creds *credentials.Store) *App {
	return &App{
		Logger:       logger,
		Orchestrator: orch,
		Sessions:     sessions,
		Blobs:        blobs,
		Credentials:  creds,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]errorBody{"error": {Code: code, Message: message}})
}
