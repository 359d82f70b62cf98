package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/icecube7035-art/ADAI/internal/domain"
	"github.com/icecube7035-art/ADAI/internal/middleware"
)

type campaignResponse struct {
	Assets []domain.Ad `json:"assets"`
}

// CampaignsCreate runs the full generation pipeline for one submission and
// returns the produced assets. The session gallery is updated before the
// response is written.
func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		a.error(w, http.StatusInternalServerError, "internal", "missing session context")
		return
	}

	var req domain.CampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		a.error(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
		return
	}

	ads, err := a.Orchestrator.RunCampaign(r.Context(), session, req)
	if err != nil {
		a.generationError(w, r.Context(), err)
		return
	}

	a.json(w, http.StatusCreated, campaignResponse{Assets: ads})
}

// generationError maps the orchestrator's taxonomy onto HTTP. Fatal provider
// failures surface a generic notice only; structured detail stays in logs.
func (a *App) generationError(w http.ResponseWriter, ctx context.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrCredentialRequired):
		a.error(w, http.StatusUnauthorized, "credential_required", "select an API key and resubmit")
	case errors.Is(err, domain.ErrRunInFlight):
		a.error(w, http.StatusConflict, "run_in_flight", "a campaign run is already in progress")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "asset not found")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		a.error(w, http.StatusRequestTimeout, "cancelled", "generation was cancelled")
	default:
		a.Logger.Error().
			Str("request_id", middleware.RequestIDFromContext(ctx)).
			Err(err).
			Msg("handlers: generation failed")
		a.error(w, http.StatusBadGateway, "generation_failed", "something went wrong during generation")
	}
}
