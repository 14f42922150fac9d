package pricing

import (
	"fmt"

	"github.com/lumengrid/lumengrid-quote/internal/shared"
)

// DiscountScope enumerates the component a discount applies to.
type DiscountScope string

const (
	ScopePanel      DiscountScope = "Panel"
	ScopeController DiscountScope = "Controller"
	ScopeGrandTotal DiscountScope = "GrandTotal"
)

// Directive is a discount request: a scope plus a percentage.
type Directive struct {
	Scope   DiscountScope `json:"scope"`
	Percent float64       `json:"percent"`
}

// Record captures an applied discount with enough information to reconstruct
// the pre-discount breakdown. AmountDeducted stays unrounded; rounding is a
// display concern.
type Record struct {
	Scope          DiscountScope `json:"scope"`
	Percent        float64       `json:"percent"`
	AmountDeducted float64       `json:"amount_deducted"`
}

// Validate checks scope and percentage bounds.
func (d Directive) Validate() error {
	switch d.Scope {
	case ScopePanel, ScopeController, ScopeGrandTotal:
	default:
		return fmt.Errorf("%w: unknown discount scope %q", shared.ErrValidation, d.Scope)
	}
	if d.Percent < 0 || d.Percent > 100 {
		return fmt.Errorf("%w: discount percent %v out of range", shared.ErrValidation, d.Percent)
	}
	return nil
}

// Apply derives a discounted breakdown from an undiscounted one. Callers
// editing an already-discounted quotation must restore the original
// breakdown first; applying on top of a discounted breakdown compounds.
func Apply(b Breakdown, d Directive) (Breakdown, Record, error) {
	if err := d.Validate(); err != nil {
		return Breakdown{}, Record{}, err
	}
	if !b.IsAvailable {
		return Breakdown{}, Record{}, fmt.Errorf("%w: cannot discount an unavailable breakdown", shared.ErrValidation)
	}

	record := Record{Scope: d.Scope, Percent: d.Percent}
	out := b

	switch d.Scope {
	case ScopePanel:
		record.AmountDeducted = b.ProductTotal * d.Percent / 100
		newTotal := b.ProductTotal - record.AmountDeducted
		out.ProductTotal = Round(newTotal)
		out.ProductSubtotal = Round(newTotal / (1 + GSTRate))
		out.ProductGST = out.ProductTotal - out.ProductSubtotal
		out.GrandTotal = Round(b.GrandTotal - record.AmountDeducted)
	case ScopeController:
		record.AmountDeducted = b.ProcessorTotal * d.Percent / 100
		newTotal := b.ProcessorTotal - record.AmountDeducted
		out.ProcessorTotal = Round(newTotal)
		out.ProcessorPrice = Round(newTotal / (1 + GSTRate))
		out.ProcessorGST = out.ProcessorTotal - out.ProcessorPrice
		out.GrandTotal = Round(b.GrandTotal - record.AmountDeducted)
	case ScopeGrandTotal:
		// Component figures stay untouched; only the grand total moves.
		record.AmountDeducted = b.GrandTotal * d.Percent / 100
		out.GrandTotal = Round(b.GrandTotal - record.AmountDeducted)
	}

	return out, record, nil
}

// Restore reconstructs the pre-discount breakdown by adding the recorded
// deduction back to the scoped component.
func Restore(b Breakdown, record Record) Breakdown {
	out := b
	switch record.Scope {
	case ScopePanel:
		total := b.ProductTotal + record.AmountDeducted
		out.ProductTotal = Round(total)
		out.ProductSubtotal = Round(total / (1 + GSTRate))
		out.ProductGST = out.ProductTotal - out.ProductSubtotal
		out.GrandTotal = Round(b.GrandTotal + record.AmountDeducted)
	case ScopeController:
		total := b.ProcessorTotal + record.AmountDeducted
		out.ProcessorTotal = Round(total)
		out.ProcessorPrice = Round(total / (1 + GSTRate))
		out.ProcessorGST = out.ProcessorTotal - out.ProcessorPrice
		out.GrandTotal = Round(b.GrandTotal + record.AmountDeducted)
	case ScopeGrandTotal:
		out.GrandTotal = Round(b.GrandTotal + record.AmountDeducted)
	}
	return out
}
