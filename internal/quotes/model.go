package quotes

import (
	"time"

	"github.com/google/uuid"

	"github.com/lumengrid/lumengrid-quote/internal/catalog"
	"github.com/lumengrid/lumengrid-quote/internal/pricing"
)

// SpecSnapshot freezes the quoted configuration at creation time. Later
// catalog edits never retroactively change a past quote.
type SpecSnapshot struct {
	ProductID        string              `json:"product_id"`
	ProductName      string              `json:"product_name"`
	PixelPitch       float64             `json:"pixel_pitch"`
	ResolutionWidth  int                 `json:"resolution_width"`
	ResolutionHeight int                 `json:"resolution_height"`
	Grid             pricing.CabinetGrid `json:"grid"`
	Processor        string              `json:"processor,omitempty"`
	Mode             string              `json:"mode,omitempty"`
}

// Quotation is a persisted quote. It is created once, mutated only by
// discount edits (which replace the breakdown and totals, never the
// snapshot) or deletion.
type Quotation struct {
	ID      uuid.UUID
	QuoteID string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	Spec     SpecSnapshot
	UserType catalog.CustomerTier

	Breakdown pricing.Breakdown
	// OriginalBreakdown is set the first time any discount is applied and
	// never overwritten afterwards.
	OriginalBreakdown *pricing.Breakdown
	Discount          *pricing.Record

	OwnerSalesUserID uuid.UUID
	CreatedBy        uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}
