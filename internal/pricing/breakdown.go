package pricing

import "math"

// GSTRate is the fixed tax rate applied to every priced component.
const GSTRate = 0.18

// Breakdown is the complete cost breakdown of a quotation. It is a value
// object: new breakdowns are derived, existing ones are never patched.
type Breakdown struct {
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`

	ProductSubtotal float64 `json:"product_subtotal"`
	ProductGST      float64 `json:"product_gst"`
	ProductTotal    float64 `json:"product_total"`

	ProcessorPrice float64 `json:"processor_price"`
	ProcessorGST   float64 `json:"processor_gst"`
	ProcessorTotal float64 `json:"processor_total"`

	StructureCost  float64 `json:"structure_cost"`
	StructureGST   float64 `json:"structure_gst"`
	StructureTotal float64 `json:"structure_total"`

	InstallationCost  float64 `json:"installation_cost"`
	InstallationGST   float64 `json:"installation_gst"`
	InstallationTotal float64 `json:"installation_total"`

	GrandTotal float64 `json:"grand_total"`

	UserTypeLabel string `json:"user_type_label"`
	ProductName   string `json:"product_name"`

	// IsAvailable is false when no unit price could be resolved; figures
	// are zeroed and callers render "pricing not available" instead.
	IsAvailable bool `json:"is_available"`
}

// Round rounds a monetary figure to the nearest whole currency unit.
// Intermediate computation stays unrounded; rounding happens only at the
// point a figure is stored or displayed.
func Round(v float64) float64 {
	return math.Round(v)
}

// component derives the rounded subtotal/GST/total triple from an unrounded
// subtotal, keeping total = subtotal + GST exact after rounding.
func component(subtotal float64) (sub, gst, total float64) {
	sub = Round(subtotal)
	gst = Round(subtotal * GSTRate)
	total = sub + gst
	return
}
