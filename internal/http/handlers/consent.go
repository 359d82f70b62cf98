package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/icecube7035-art/ADAI/internal/gallery"
	"github.com/icecube7035-art/ADAI/internal/middleware"
)

// ConsentGet returns the session's acknowledgment flags.
func (a *App) ConsentGet(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		a.error(w, http.StatusInternalServerError, "internal", "missing session context")
		return
	}
	a.json(w, http.StatusOK, session.Consent())
}

type consentUpdate struct {
	AcceptTerms        *bool `json:"accept_terms,omitempty"`
	AcknowledgePrivacy *bool `json:"acknowledge_privacy,omitempty"`
	IntroPlayed        *bool `json:"intro_played,omitempty"`
}

// ConsentUpdate records terms acceptance (with timestamp), privacy
// acknowledgment, and the intro-played flag. Advisory only.
func (a *App) ConsentUpdate(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		a.error(w, http.StatusInternalServerError, "internal", "missing session context")
		return
	}

	var req consentUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	session.UpdateConsent(func(c *gallery.ConsentFlags) {
		if req.AcceptTerms != nil {
			c.TermsAccepted = *req.AcceptTerms
			if *req.AcceptTerms {
				now := time.Now()
				c.TermsAcceptedAt = &now
			} else {
				c.TermsAcceptedAt = nil
			}
		}
		if req.AcknowledgePrivacy != nil {
			c.PrivacyAcked = *req.AcknowledgePrivacy
		}
		if req.IntroPlayed != nil {
			c.IntroPlayed = *req.IntroPlayed
		}
	})

	a.json(w, http.StatusOK, session.Consent())
}

// SessionDelete discards the caller's session: gallery, flags, everything.
func (a *App) SessionDelete(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		a.error(w, http.StatusInternalServerError, "internal", "missing session context")
		return
	}
	a.Sessions.Drop(session.ID)
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
