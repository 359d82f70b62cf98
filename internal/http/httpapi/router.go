package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/icecube7035-art/ADAI/internal/gallery"
	"github.com/icecube7035-art/ADAI/internal/http/handlers"
	"github.com/icecube7035-art/ADAI/internal/infra"
	"github.com/icecube7035-art/ADAI/internal/middleware"
)

func NewRouter(cfg *infra.Config, logger infra.Logger, app *handlers.App, sessions *gallery.Manager) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
			AllowCredentials: true,
		}),
	)

	r.Get("/v1/healthz", app.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(sessions))

		r.Get("/v1/catalog", app.Catalog)

		r.Post("/v1/campaigns", app.CampaignsCreate)

		r.Route("/v1/assets", func(r chi.Router) {
			r.Get("/", app.AssetsList)
			r.Post("/{id}/edit", app.AssetsEdit)
		})

		r.Get("/v1/blobs/{id}", app.BlobsGet)

		r.Route("/v1/credentials", func(r chi.Router) {
			r.Get("/status", app.CredentialsStatus)
			r.Put("/", app.CredentialsSelect)
		})

		r.Route("/v1/consent", func(r chi.Router) {
			r.Get("/", app.ConsentGet)
			r.Post("/", app.ConsentUpdate)
		})

		r.Delete("/v1/session", app.SessionDelete)
	})

	return r
}
