// Package dashboard projects the quote collections into the agent's overview:
// per-product counts, collected premium, and the quote cards themselves.
// It is read-only; all writes go through the quote service.
package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"bima/internal/quote/models"
	"bima/pkg/domain"
)

// QuoteSource is the slice of the quote service the projection reads from.
type QuoteSource interface {
	List(ctx context.Context, product domain.ProductType) ([]*models.Quote, error)
	Validity() time.Duration
}

// QuoteCard is one row of the dashboard listing.
type QuoteCard struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	HolderName   string    `json:"holder_name"`
	Description  string    `json:"description"`
	PremiumKES   float64   `json:"premium_kes"`
	PolicyNumber string    `json:"policy_number,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ProductSummary aggregates one product line.
type ProductSummary struct {
	Product          string      `json:"product"`
	Title            string      `json:"title"`
	PendingCount     int         `json:"pending_count"`
	ActiveCount      int         `json:"active_count"`
	CollectedPremium float64     `json:"collected_premium_kes"`
	Quotes           []QuoteCard `json:"quotes"`
}

// Totals aggregates across all product lines.
type Totals struct {
	Quotes           int     `json:"quotes"`
	Pending          int     `json:"pending"`
	ActivePolicies   int     `json:"active_policies"`
	CollectedPremium float64 `json:"collected_premium_kes"`
}

// Overview is the full dashboard projection.
type Overview struct {
	Products []ProductSummary `json:"products"`
	Totals   Totals           `json:"totals"`
}

// Service builds dashboard projections.
type Service struct {
	quotes QuoteSource
}

func NewService(quotes QuoteSource) *Service {
	return &Service{quotes: quotes}
}

// Overview reads all product collections concurrently and aggregates them in
// product order. Any product read failing fails the projection; a partial
// dashboard would misreport totals.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	summaries := make([]ProductSummary, len(domain.AllProducts))

	g, ctx := errgroup.WithContext(ctx)
	for i, product := range domain.AllProducts {
		g.Go(func() error {
			quotes, err := s.quotes.List(ctx, product)
			if err != nil {
				return err
			}
			summaries[i] = s.summarize(product, quotes)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview := &Overview{Products: summaries}
	for _, summary := range summaries {
		overview.Totals.Quotes += summary.PendingCount + summary.ActiveCount
		overview.Totals.Pending += summary.PendingCount
		overview.Totals.ActivePolicies += summary.ActiveCount
		overview.Totals.CollectedPremium += summary.CollectedPremium
	}
	return overview, nil
}

func (s *Service) summarize(product domain.ProductType, quotes []*models.Quote) ProductSummary {
	validity := s.quotes.Validity()
	summary := ProductSummary{
		Product: string(product),
		Title:   product.Title(),
		Quotes:  make([]QuoteCard, 0, len(quotes)),
	}
	for _, q := range quotes {
		card := QuoteCard{
			ID:          q.ID.String(),
			Status:      string(q.Status),
			HolderName:  q.Holder.FullName,
			Description: product.Title() + ", option " + q.Option,
			PremiumKES:  q.Breakdown.TotalPayableKES,
			CreatedAt:   q.CreatedAt,
			ExpiresAt:   q.ExpiresAt(validity),
		}
		if q.IsActive() {
			summary.ActiveCount++
			summary.CollectedPremium += q.Breakdown.TotalPayableKES
			if q.Policy != nil {
				card.PolicyNumber = q.Policy.Number.String()
			}
		} else {
			summary.PendingCount++
		}
		summary.Quotes = append(summary.Quotes, card)
	}
	return summary
}
