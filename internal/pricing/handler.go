package pricing

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lumengrid/lumengrid-quote/internal/catalog"
	"github.com/lumengrid/lumengrid-quote/internal/platform/httpx"
)

// Handler exposes the pure pricing preview endpoint. Nothing is persisted;
// saved quotations go through the quotes service instead.
type Handler struct {
	logger     *slog.Logger
	catalog    *catalog.Catalog
	calculator *Calculator
	validator  *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, c *catalog.Catalog, calc *Calculator) *Handler {
	return &Handler{
		logger:     logger,
		catalog:    c,
		calculator: calc,
		validator:  validator.New(),
	}
}

// MountRoutes registers pricing routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/pricing/preview", h.Preview)
}

type previewRequest struct {
	ProductID        string      `json:"product_id" validate:"required"`
	Grid             CabinetGrid `json:"grid"`
	Processor        string      `json:"processor,omitempty"`
	UserType         string      `json:"user_type" validate:"required,oneof=endUser reseller siChannel"`
	StructureCost    float64     `json:"structure_cost" validate:"gte=0"`
	InstallationCost float64     `json:"installation_cost" validate:"gte=0"`
	PriceOverride    *float64    `json:"price_override,omitempty" validate:"omitempty,gt=0"`
}

// Preview computes a breakdown without saving anything.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid pricing preview request")
		return
	}

	product, err := h.catalog.Get(req.ProductID)
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "product "+req.ProductID+" not found")
		return
	}

	breakdown, err := h.calculator.Price(PriceInput{
		Product:          product,
		Grid:             req.Grid,
		Processor:        req.Processor,
		Tier:             catalog.CustomerTier(req.UserType),
		StructureCost:    req.StructureCost,
		InstallationCost: req.InstallationCost,
		Override:         req.PriceOverride,
	})
	if err != nil {
		h.logger.Error("pricing preview", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, breakdown)
}
