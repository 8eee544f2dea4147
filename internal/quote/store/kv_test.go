package store

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"bima/internal/kv"
	"bima/internal/quote/models"
	"bima/internal/rating"
	"bima/pkg/domain"
	"bima/pkg/platform/sentinel"
)

type QuoteStoreSuite struct {
	suite.Suite
	blobs *kv.Memory
	store *KV
	ctx   context.Context
}

func (s *QuoteStoreSuite) SetupTest() {
	s.blobs = kv.NewMemory()
	s.store = NewKV(s.blobs, slog.Default())
	s.ctx = context.Background()
}

func TestQuoteStoreSuite(t *testing.T) {
	suite.Run(t, new(QuoteStoreSuite))
}

func (s *QuoteStoreSuite) newQuote(product domain.ProductType) *models.Quote {
	q, err := models.NewQuote(product,
		models.Holder{FullName: "Wanjiku Kamau", Email: "wanjiku@example.com", Phone: "+254700000001"},
		"AFRICA",
		nil,
		rating.Breakdown{Currency: "USD", TotalPayable: 12, TotalPayableKES: 1560},
		time.Now(),
	)
	s.Require().NoError(err)
	return q
}

func (s *QuoteStoreSuite) TestInsertAndLookups() {
	s.Run("inserts and finds quote by ID", func() {
		quote := s.newQuote(domain.ProductTravel)
		s.Require().NoError(s.store.Insert(s.ctx, quote))

		found, err := s.store.FindByID(s.ctx, domain.ProductTravel, quote.ID)
		s.Require().NoError(err)
		s.Equal(quote.Holder.FullName, found.Holder.FullName)
		s.Equal(models.StatusPending, found.Status)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, domain.ProductTravel, "TRV000000XXXXXX")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects duplicate ID", func() {
		quote := s.newQuote(domain.ProductGolf)
		s.Require().NoError(s.store.Insert(s.ctx, quote))
		s.Require().ErrorIs(s.store.Insert(s.ctx, quote), sentinel.ErrConflict)
	})
}

func (s *QuoteStoreSuite) TestProductIsolation() {
	travel := s.newQuote(domain.ProductTravel)
	golf := s.newQuote(domain.ProductGolf)
	s.Require().NoError(s.store.Insert(s.ctx, travel))
	s.Require().NoError(s.store.Insert(s.ctx, golf))

	travelQuotes, err := s.store.List(s.ctx, domain.ProductTravel)
	s.Require().NoError(err)
	s.Len(travelQuotes, 1)

	_, err = s.store.FindByID(s.ctx, domain.ProductGolf, travel.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *QuoteStoreSuite) TestListPreservesInsertionOrder() {
	first := s.newQuote(domain.ProductMarine)
	second := s.newQuote(domain.ProductMarine)
	s.Require().NoError(s.store.Insert(s.ctx, first))
	s.Require().NoError(s.store.Insert(s.ctx, second))

	quotes, err := s.store.List(s.ctx, domain.ProductMarine)
	s.Require().NoError(err)
	s.Require().Len(quotes, 2)
	s.Equal(first.ID, quotes[0].ID)
	s.Equal(second.ID, quotes[1].ID)
}

func (s *QuoteStoreSuite) TestExecute() {
	s.Run("persists mutation when validation passes", func() {
		quote := s.newQuote(domain.ProductTravel)
		s.Require().NoError(s.store.Insert(s.ctx, quote))

		now := time.Now()
		updated, err := s.store.Execute(s.ctx, domain.ProductTravel, quote.ID,
			func(q *models.Quote) error { return q.CanActivate() },
			func(q *models.Quote) {
				q.ApplyActivation(
					models.PaymentInfo{Method: "stk", Receipt: "RCP-1", Amount: 1560, Currency: "KES", PaidAt: now},
					models.Policy{Number: "TRA/2026/4821", IssuedAt: now},
					now,
				)
			},
		)
		s.Require().NoError(err)
		s.Equal(models.StatusActive, updated.Status)

		found, err := s.store.FindByID(s.ctx, domain.ProductTravel, quote.ID)
		s.Require().NoError(err)
		s.True(found.IsActive())
		s.Require().NotNil(found.Policy)
		s.Equal(domain.PolicyNumber("TRA/2026/4821"), found.Policy.Number)
	})

	s.Run("aborts without writing when validation fails", func() {
		quote := s.newQuote(domain.ProductTravel)
		s.Require().NoError(s.store.Insert(s.ctx, quote))

		_, err := s.store.Execute(s.ctx, domain.ProductTravel, quote.ID,
			func(q *models.Quote) error { return sentinel.ErrInvalidState },
			func(q *models.Quote) { q.Status = models.StatusActive },
		)
		s.Require().ErrorIs(err, sentinel.ErrInvalidState)

		found, err := s.store.FindByID(s.ctx, domain.ProductTravel, quote.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusPending, found.Status)
	})

	s.Run("returns ErrNotFound for unknown quote", func() {
		_, err := s.store.Execute(s.ctx, domain.ProductTravel, "TRV999999ZZZZZZ",
			func(q *models.Quote) error { return nil },
			func(q *models.Quote) {},
		)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *QuoteStoreSuite) TestDelete() {
	s.Run("removes the quote", func() {
		quote := s.newQuote(domain.ProductPersonalAccident)
		s.Require().NoError(s.store.Insert(s.ctx, quote))
		s.Require().NoError(s.store.Delete(s.ctx, domain.ProductPersonalAccident, quote.ID))

		_, err := s.store.FindByID(s.ctx, domain.ProductPersonalAccident, quote.ID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns ErrNotFound when absent", func() {
		err := s.store.Delete(s.ctx, domain.ProductPersonalAccident, "PA000000AAAAAA")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *QuoteStoreSuite) TestCorruptCollectionResets() {
	s.Require().NoError(s.blobs.Set(s.ctx, "quotes:travel", "{not json"))

	quotes, err := s.store.List(s.ctx, domain.ProductTravel)
	s.Require().NoError(err)
	s.Empty(quotes)

	// The next write repairs the key.
	quote := s.newQuote(domain.ProductTravel)
	s.Require().NoError(s.store.Insert(s.ctx, quote))

	quotes, err = s.store.List(s.ctx, domain.ProductTravel)
	s.Require().NoError(err)
	s.Len(quotes, 1)
}
