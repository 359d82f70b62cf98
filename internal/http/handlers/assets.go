package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/icecube7035-art/ADAI/internal/domain"
	"github.com/icecube7035-art/ADAI/internal/middleware"
)

// AssetsList returns the session gallery, newest campaign first.
func (a *App) AssetsList(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		a.error(w, http.StatusInternalServerError, "internal", "missing session context")
		return
	}
	a.json(w, http.StatusOK, map[string][]domain.Ad{"assets": session.Gallery.List()})
}

type editRequest struct {
	Instruction string `json:"instruction"`
}

// AssetsEdit revises an image asset in place with a free-text instruction.
func (a *App) AssetsEdit(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		a.error(w, http.StatusInternalServerError, "internal", "missing session context")
		return
	}

	adID := chi.URLParam(r, "id")
	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Instruction = strings.TrimSpace(req.Instruction)
	if req.Instruction == "" {
		a.error(w, http.StatusUnprocessableEntity, "validation_failed", "instruction is required")
		return
	}

	ad, err := a.Orchestrator.EditAd(r.Context(), session, adID, req.Instruction)
	if err != nil {
		a.generationError(w, r.Context(), err)
		return
	}
	a.json(w, http.StatusOK, map[string]domain.Ad{"asset": ad})
}
