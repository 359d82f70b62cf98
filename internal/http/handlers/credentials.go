package handlers

import (
	"encoding/json"
	"net/http"
)

type credentialStatus struct {
	Selected bool `json:"selected"`
}

// CredentialsStatus reports whether an API key is currently active.
func (a *App) CredentialsStatus(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, credentialStatus{Selected: a.Credentials.Selected()})
}

type credentialSelect struct {
	APIKey string `json:"api_key"`
}

// CredentialsSelect activates a key at runtime. This is the selection flow
// the client opens when a run reports credential_required.
func (a *App) CredentialsSelect(w http.ResponseWriter, r *http.Request) {
	var req credentialSelect
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Credentials.Select(req.APIKey); err != nil {
		a.error(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
		return
	}
	a.json(w, http.StatusOK, credentialStatus{Selected: true})
}
