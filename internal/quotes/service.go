package quotes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lumengrid/lumengrid-quote/internal/catalog"
	"github.com/lumengrid/lumengrid-quote/internal/pricing"
	"github.com/lumengrid/lumengrid-quote/internal/salesteam"
	"github.com/lumengrid/lumengrid-quote/internal/shared"
)

// ReportNotifier is told whenever quotation data changed so report caches
// can be invalidated and rewarmed in the background.
type ReportNotifier interface {
	QuotationsChanged(ctx context.Context)
}

// Service implements quotation business rules over the pricing engine.
type Service struct {
	repo       Repository
	users      salesteam.Repository
	catalog    *catalog.Catalog
	calculator *pricing.Calculator
	notifier   ReportNotifier
	now        func() time.Time
}

// NewService builds a Service. notifier may be nil.
func NewService(repo Repository, users salesteam.Repository, cat *catalog.Catalog, calc *pricing.Calculator, notifier ReportNotifier) *Service {
	return &Service{
		repo:       repo,
		users:      users,
		catalog:    cat,
		calculator: calc,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Create prices the requested configuration, generates the quote identifier
// and persists the quotation. A unique-constraint collision on insert is
// retried once with a freshly generated identifier before the conflict is
// surfaced to the caller.
func (s *Service) Create(ctx context.Context, req CreateQuotationRequest, creator salesteam.SalesUser) (*Quotation, error) {
	tier := catalog.CustomerTier(req.UserType)
	if !creator.MayQuoteFor(tier) {
		return nil, fmt.Errorf("%w: %s may not quote for tier %s", shared.ErrValidation, creator.Name, tier)
	}

	product, err := s.catalog.Get(req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, fmt.Errorf("%w: product %s", shared.ErrNotFound, req.ProductID)
		}
		return nil, err
	}

	breakdown, err := s.calculator.Price(pricing.PriceInput{
		Product:          product,
		Grid:             req.Grid,
		Processor:        req.Processor,
		Tier:             tier,
		StructureCost:    req.StructureCost,
		InstallationCost: req.InstallationCost,
		Override:         req.PriceOverride,
	})
	if err != nil {
		return nil, err
	}
	if !breakdown.IsAvailable {
		return nil, fmt.Errorf("%w: pricing not available for product %s", shared.ErrValidation, product.ID)
	}

	var requestedOwner *uuid.UUID
	if req.RequestedOwnerID != "" {
		ownerID, err := uuid.Parse(req.RequestedOwnerID)
		if err != nil {
			return nil, fmt.Errorf("%w: requested owner id: %v", shared.ErrValidation, err)
		}
		requestedOwner = &ownerID
	}
	ownerID, err := salesteam.ResolveOwner(ctx, s.users, creator, requestedOwner)
	if err != nil {
		return nil, err
	}

	quotation := Quotation{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Spec: SpecSnapshot{
			ProductID:        product.ID,
			ProductName:      product.Name,
			PixelPitch:       product.PixelPitch,
			ResolutionWidth:  req.ResolutionWidth,
			ResolutionHeight: req.ResolutionHeight,
			Grid:             req.Grid,
			Processor:        req.Processor,
			Mode:             req.Mode,
		},
		UserType:         tier,
		Breakdown:        breakdown,
		OwnerSalesUserID: ownerID,
		CreatedBy:        creator.ID,
	}

	date := s.now().UTC()
	for attempt := 0; ; attempt++ {
		quoteID, err := s.repo.NextQuoteID(ctx, req.QuoteName, date)
		if err != nil {
			return nil, fmt.Errorf("generate quote id: %w", err)
		}
		quotation.ID = uuid.New()
		quotation.QuoteID = quoteID

		err = s.repo.Insert(ctx, quotation)
		if err == nil {
			break
		}
		if errors.Is(err, shared.ErrConflict) && attempt == 0 {
			continue
		}
		return nil, fmt.Errorf("insert quotation: %w", err)
	}

	if s.notifier != nil {
		s.notifier.QuotationsChanged(ctx)
	}
	return s.repo.GetByQuoteID(ctx, quotation.QuoteID)
}

// Get returns the stored quotation. Redisplay always uses the persisted
// breakdown; prices are never recomputed from current catalog data on read.
func (s *Service) Get(ctx context.Context, quoteID string) (*Quotation, error) {
	return s.repo.GetByQuoteID(ctx, quoteID)
}

// List returns quotations matching the filter.
func (s *Service) List(ctx context.Context, req ListRequest) ([]Quotation, int, error) {
	return s.repo.List(ctx, req)
}

// ApplyDiscount replaces the active discount on a quotation. An existing
// discount is undone first by restoring the original breakdown, so edits
// replace rather than compound. Only one discount is active at a time; the
// new directive supersedes the previous scope entirely.
func (s *Service) ApplyDiscount(ctx context.Context, quoteID string, directive pricing.Directive) (*Quotation, error) {
	if err := directive.Validate(); err != nil {
		return nil, err
	}

	q, err := s.repo.GetByQuoteID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	base := q.Breakdown
	if q.OriginalBreakdown != nil {
		base = *q.OriginalBreakdown
	}

	var (
		current  pricing.Breakdown
		discount *pricing.Record
	)
	if directive.Percent == 0 {
		// 0% clears the discount marker; the breakdown reverts to the
		// restored original.
		current = base
	} else {
		applied, record, err := pricing.Apply(base, directive)
		if err != nil {
			return nil, err
		}
		current = applied
		discount = &record
	}

	// Persist the pre-discount breakdown the first time any discount is
	// applied; the repository never overwrites it afterwards.
	var original *pricing.Breakdown
	if q.OriginalBreakdown == nil {
		original = &base
	}

	if err := s.repo.UpdatePricing(ctx, q.ID, current, original, discount); err != nil {
		return nil, fmt.Errorf("update pricing: %w", err)
	}

	if s.notifier != nil {
		s.notifier.QuotationsChanged(ctx)
	}
	return s.repo.GetByQuoteID(ctx, quoteID)
}

// Delete removes a quotation.
func (s *Service) Delete(ctx context.Context, quoteID string) error {
	q, err := s.repo.GetByQuoteID(ctx, quoteID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, q.ID); err != nil {
		return err
	}
	if s.notifier != nil {
		s.notifier.QuotationsChanged(ctx)
	}
	return nil
}
