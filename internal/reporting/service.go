package reporting

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lumengrid/lumengrid-quote/internal/salesteam"
)

// OwnerSummary is one row of the sales summary report.
type OwnerSummary struct {
	OwnerID        string  `json:"ownerId"`
	OwnerName      string  `json:"ownerName"`
	QuoteCount     int64   `json:"quoteCount"`
	Revenue        float64 `json:"revenue"`
	RevenueDisplay string  `json:"revenueDisplay"`
}

// SalesSummary is the full report payload.
type SalesSummary struct {
	From        *time.Time     `json:"from,omitempty"`
	To          *time.Time     `json:"to,omitempty"`
	TotalQuotes int64          `json:"totalQuotes"`
	Revenue     float64        `json:"revenue"`
	Owners      []OwnerSummary `json:"owners"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// Service assembles sales summaries from quotation aggregates.
type Service struct {
	repo    Repository
	users   salesteam.Repository
	cache   *Cache
	group   singleflight.Group
	printer *message.Printer
}

// NewService wires the reporting service.
func NewService(repo Repository, users salesteam.Repository, cache *Cache) *Service {
	return &Service{
		repo:    repo,
		users:   users,
		cache:   cache,
		printer: message.NewPrinter(language.English),
	}
}

// SalesSummary returns per-owner revenue and quote counts, cache backed.
// Concurrent callers for the same window share a single build.
func (s *Service) SalesSummary(ctx context.Context, from, to *time.Time) (SalesSummary, error) {
	fromKey, toKey := "all", "all"
	if from != nil {
		fromKey = from.UTC().Format("2006-01-02")
	}
	if to != nil {
		toKey = to.UTC().Format("2006-01-02")
	}

	key, err := s.cache.BuildKey(ctx, summaryKey(fromKey, toKey))
	if err != nil {
		return SalesSummary{}, err
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		var summary SalesSummary
		err := s.cache.FetchJSON(ctx, key, &summary, func(ctx context.Context) (interface{}, error) {
			return s.buildSummary(ctx, from, to)
		})
		return summary, err
	})
	if err != nil {
		return SalesSummary{}, err
	}
	return result.(SalesSummary), nil
}

func (s *Service) buildSummary(ctx context.Context, from, to *time.Time) (SalesSummary, error) {
	rollups, err := s.repo.OwnerRollups(ctx, from, to)
	if err != nil {
		return SalesSummary{}, err
	}

	summary := SalesSummary{
		From:        from,
		To:          to,
		Owners:      make([]OwnerSummary, len(rollups)),
		GeneratedAt: time.Now().UTC(),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, rollup := range rollups {
		i, rollup := i, rollup
		g.Go(func() error {
			name := "Unknown"
			if user, err := s.users.Get(gctx, rollup.OwnerID); err == nil {
				name = user.Name
			}
			mu.Lock()
			summary.Owners[i] = OwnerSummary{
				OwnerID:        rollup.OwnerID.String(),
				OwnerName:      name,
				QuoteCount:     rollup.QuoteCount,
				Revenue:        rollup.Revenue,
				RevenueDisplay: s.printer.Sprintf("%.2f", rollup.Revenue),
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SalesSummary{}, err
	}

	for _, owner := range summary.Owners {
		summary.TotalQuotes += owner.QuoteCount
		summary.Revenue += owner.Revenue
	}
	sort.SliceStable(summary.Owners, func(i, j int) bool {
		return summary.Owners[i].Revenue > summary.Owners[j].Revenue
	})
	return summary, nil
}

// Invalidate bumps the report cache version after quotation changes.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}
