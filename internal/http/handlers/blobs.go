package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// BlobsGet serves a registered binary, typically a fetched video.
func (a *App) BlobsGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b, ok := a.Blobs.Get(id)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "blob not found")
		return
	}
	w.Header().Set("Content-Type", b.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(b.Data)))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b.Data)
}
