package catalog

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lumengrid/lumengrid-quote/internal/platform/httpx"
)

// Handler exposes pitch recommendation and catalog browsing endpoints.
type Handler struct {
	logger   *slog.Logger
	catalog  *Catalog
	resolver *Resolver
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, c *Catalog) *Handler {
	return &Handler{
		logger:   logger,
		catalog:  c,
		resolver: NewResolver(c),
	}
}

// MountRoutes registers catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/recommendations", h.Recommend)
	r.Get("/products", h.Browse)
}

type productResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PixelPitch  float64 `json:"pixel_pitch"`
	Environment string  `json:"environment"`
	Category    string  `json:"category"`
	SubType     string  `json:"sub_type,omitempty"`
}

type recommendationResponse struct {
	PixelPitch float64              `json:"pixel_pitch"`
	Band       *ViewingDistanceBand `json:"band,omitempty"`
	Products   []productResponse    `json:"products"`
}

// Recommend resolves a viewing distance to a pitch and returns the curated
// product list for it.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	min, err := strconv.ParseFloat(q.Get("distance"), 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "distance must be numeric")
		return
	}
	dist := Scalar(min)
	if rawMax := q.Get("distance_max"); rawMax != "" {
		max, err := strconv.ParseFloat(rawMax, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "distance_max must be numeric")
			return
		}
		dist = Distance{Min: min, Max: max}
	}

	unit := DistanceUnit(q.Get("unit"))
	if unit == "" {
		unit = UnitMeters
	}

	var env *Environment
	if rawEnv := q.Get("environment"); rawEnv != "" {
		e := Environment(rawEnv)
		env = &e
	}

	pitch, ok, err := h.resolver.Resolve(dist, unit, env)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no pitch recommendation for the given inputs")
		return
	}

	criteria := FilterCriteria{Pitch: &pitch, Curated: true}
	if env != nil {
		criteria.Environment = string(*env)
	}

	resp := recommendationResponse{
		PixelPitch: pitch,
		Products:   toProductResponses(h.catalog.Filter(criteria)),
	}
	if band, found := BandForPitch(pitch); found {
		resp.Band = &band
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Browse lists catalog products without the curated-path family exclusions.
func (h *Handler) Browse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria := FilterCriteria{
		Environment: q.Get("environment"),
		SubType:     q.Get("sub_type"),
		Category:    q.Get("category"),
	}
	if rawPitch := q.Get("pitch"); rawPitch != "" {
		pitch, err := strconv.ParseFloat(rawPitch, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "pitch must be numeric")
			return
		}
		criteria.Pitch = &pitch
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"items": toProductResponses(h.catalog.Filter(criteria)),
	})
}

func toProductResponses(products []Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse{
			ID:          p.ID,
			Name:        p.Name,
			PixelPitch:  p.PixelPitch,
			Environment: string(p.Environment),
			Category:    p.Category,
			SubType:     p.SubType,
		})
	}
	return out
}
