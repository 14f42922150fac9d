package quotes

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lumengrid/lumengrid-quote/internal/platform/httpx"
	"github.com/lumengrid/lumengrid-quote/internal/pricing"
	"github.com/lumengrid/lumengrid-quote/internal/salesteam"
	"github.com/lumengrid/lumengrid-quote/internal/shared"
)

// CreatorResolver extracts the authenticated sales user for a request.
// Session handling lives outside this engine; the router injects it.
type CreatorResolver func(r *http.Request) (salesteam.SalesUser, error)

// Handler wires the quotation HTTP endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	creator   CreatorResolver
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, creator CreatorResolver) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		creator:   creator,
		validator: validator.New(),
	}
}

type quotationResponse struct {
	ID        string            `json:"id"`
	QuoteID   string            `json:"quote_id"`
	Customer  customerResponse  `json:"customer"`
	Spec      SpecSnapshot      `json:"spec"`
	UserType  string            `json:"user_type"`
	Breakdown pricing.Breakdown `json:"breakdown"`
	Discount  *pricing.Record   `json:"discount,omitempty"`
	OwnerID   string            `json:"owner_sales_user_id"`
	CreatedBy string            `json:"created_by"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type customerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func toResponse(q *Quotation) quotationResponse {
	return quotationResponse{
		ID:      q.ID.String(),
		QuoteID: q.QuoteID,
		Customer: customerResponse{
			Name:  q.CustomerName,
			Email: q.CustomerEmail,
			Phone: q.CustomerPhone,
		},
		Spec:      q.Spec,
		UserType:  string(q.UserType),
		Breakdown: q.Breakdown,
		Discount:  q.Discount,
		OwnerID:   q.OwnerSalesUserID.String(),
		CreatedBy: q.CreatedBy.String(),
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	creator, err := h.creator(r)
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	var req CreateQuotationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", validationDetail(err))
		return
	}

	q, err := h.service.Create(r.Context(), req, creator)
	if err != nil {
		h.logger.Error("create quotation", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(q))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	quoteID, err := quoteIDFromURL(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	q, err := h.service.Get(r.Context(), quoteID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(q))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var req ListRequest

	if raw := r.URL.Query().Get("owner_id"); raw != "" {
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "owner_id must be a uuid")
			return
		}
		req.OwnerID = &ownerID
	}
	req.Customer = r.URL.Query().Get("customer")
	req.DateFrom = parseDate(r.URL.Query().Get("date_from"))
	req.DateTo = parseDate(r.URL.Query().Get("date_to"))

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	pagination := shared.NewPagination(page, perPage, 0)
	req.Limit = pagination.PerPage
	req.Offset = pagination.Offset()

	quotations, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list quotations", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	items := make([]quotationResponse, 0, len(quotations))
	for i := range quotations {
		items = append(items, toResponse(&quotations[i]))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":      items,
		"pagination": shared.NewPagination(page, perPage, total),
	})
}

func (h *Handler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	quoteID, err := quoteIDFromURL(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	var req DiscountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", validationDetail(err))
		return
	}

	q, err := h.service.ApplyDiscount(r.Context(), quoteID, pricing.Directive{
		Scope:   pricing.DiscountScope(req.Scope),
		Percent: req.Percent,
	})
	if err != nil {
		h.logger.Error("apply discount", slog.String("quote_id", quoteID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(q))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	quoteID, err := quoteIDFromURL(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), quoteID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// quoteIDFromURL reassembles the slash-separated quote id from its route
// segments and validates the format before any lookup.
func quoteIDFromURL(r *http.Request) (string, error) {
	id := chi.URLParam(r, "*")
	if _, err := ParseQuoteID(id); err != nil {
		return "", err
	}
	return id, nil
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

func validationDetail(err error) string {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return first.Field() + " failed " + first.Tag() + " validation"
	}
	return "invalid request"
}
