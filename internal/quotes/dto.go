package quotes

import (
	"github.com/lumengrid/lumengrid-quote/internal/pricing"
)

type CreateQuotationRequest struct {
	CustomerName  string `json:"customer_name" validate:"required,max=120"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone string `json:"customer_phone" validate:"omitempty,min=7,max=20"`

	ProductID        string              `json:"product_id" validate:"required"`
	Grid             pricing.CabinetGrid `json:"grid"`
	Processor        string              `json:"processor,omitempty"`
	UserType         string              `json:"user_type" validate:"required,oneof=endUser reseller siChannel"`
	Mode             string              `json:"mode,omitempty"`
	ResolutionWidth  int                 `json:"resolution_width" validate:"gte=0"`
	ResolutionHeight int                 `json:"resolution_height" validate:"gte=0"`

	StructureCost    float64  `json:"structure_cost" validate:"gte=0"`
	InstallationCost float64  `json:"installation_cost" validate:"gte=0"`
	PriceOverride    *float64 `json:"price_override,omitempty" validate:"omitempty,gt=0"`

	// QuoteName is the identifier token embedded in the quote id,
	// typically the requester's first name.
	QuoteName string `json:"quote_name" validate:"required,alpha"`

	// RequestedOwnerID assigns the quotation on behalf of another
	// representative; honored only for elevated creators.
	RequestedOwnerID string `json:"requested_owner_id,omitempty" validate:"omitempty,uuid"`
}

type DiscountRequest struct {
	Scope   string  `json:"scope" validate:"required,oneof=Panel Controller GrandTotal"`
	Percent float64 `json:"percent" validate:"gte=0,lte=100"`
}
