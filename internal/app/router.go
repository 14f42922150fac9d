package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lumengrid/lumengrid-quote/internal/catalog"
	"github.com/lumengrid/lumengrid-quote/internal/observability"
	"github.com/lumengrid/lumengrid-quote/internal/pricing"
	"github.com/lumengrid/lumengrid-quote/internal/quotes"
	"github.com/lumengrid/lumengrid-quote/internal/reporting"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	CatalogHandler   *catalog.Handler
	PricingHandler   *pricing.Handler
	QuotesHandler    *quotes.Handler
	ReportingHandler *reporting.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(api chi.Router) {
		if params.CatalogHandler != nil {
			params.CatalogHandler.MountRoutes(api)
		}
		if params.PricingHandler != nil {
			params.PricingHandler.MountRoutes(api)
		}
		if params.QuotesHandler != nil {
			params.QuotesHandler.MountRoutes(api)
		}
		if params.ReportingHandler != nil {
			params.ReportingHandler.MountRoutes(api)
		}
	})

	return r
}
