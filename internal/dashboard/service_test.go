package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"bima/internal/kv"
	"bima/internal/payment"
	"bima/internal/quote/models"
	quoteservice "bima/internal/quote/service"
	"bima/internal/quote/store"
	"bima/internal/rating"
	"bima/pkg/domain"
	"bima/pkg/requestcontext"
	"bima/pkg/testutil"
)

type DashboardSuite struct {
	suite.Suite
	quotes   *quoteservice.Service
	payments *payment.Service
	service  *Service
	ctx      context.Context
	now      time.Time
}

func (s *DashboardSuite) SetupTest() {
	s.quotes = quoteservice.New(
		store.NewKV(kv.NewMemory(), slog.Default()),
		rating.NewCalculator(rating.Default(), 130.0),
	)
	s.payments = payment.NewService(payment.NewSimulator(0), s.quotes)
	s.service = NewService(s.quotes)

	s.now = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func TestDashboardSuite(t *testing.T) {
	suite.Run(t, new(DashboardSuite))
}

func (s *DashboardSuite) holder(name string) models.Holder {
	return models.Holder{FullName: name, Email: "buyer@example.com", Phone: "+254700000001"}
}

func (s *DashboardSuite) TestEmptyOverview() {
	overview, err := s.service.Overview(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(overview.Products, 4)
	s.Equal("travel", overview.Products[0].Product)
	s.Equal("golf", overview.Products[1].Product)
	s.Equal("marine", overview.Products[2].Product)
	s.Equal("personal-accident", overview.Products[3].Product)
	s.Zero(overview.Totals.Quotes)
}

func (s *DashboardSuite) TestOverviewAggregation() {
	golfQuote, err := s.quotes.CreateGolf(s.ctx, s.holder("Wanjiku Kamau"), rating.GolfInput{CoverOption: "B"})
	s.Require().NoError(err)
	_, err = s.payments.Pay(s.ctx, domain.ProductGolf, golfQuote.ID, payment.MethodSTKPush, "+254700000001")
	s.Require().NoError(err)

	_, err = s.quotes.CreateAccident(s.ctx, s.holder("Otieno Odhiambo"), rating.AccidentInput{
		CoverOption: "B", AgeRange: "41-70",
	})
	s.Require().NoError(err)

	overview, err := s.service.Overview(s.ctx)
	s.Require().NoError(err)

	s.Run("per-product counts", func() {
		golf := overview.Products[1]
		s.Equal(1, golf.ActiveCount)
		s.Zero(golf.PendingCount)
		s.Equal(7500.0, golf.CollectedPremium)

		pa := overview.Products[3]
		s.Equal(1, pa.PendingCount)
		s.Zero(pa.ActiveCount)
		s.Zero(pa.CollectedPremium, "pending premium is not collected")
	})

	s.Run("totals roll up across products", func() {
		s.Equal(2, overview.Totals.Quotes)
		s.Equal(1, overview.Totals.Pending)
		s.Equal(1, overview.Totals.ActivePolicies)
		s.Equal(7500.0, overview.Totals.CollectedPremium)
	})

	s.Run("cards carry expiry and policy number", func() {
		golfCard := overview.Products[1].Quotes[0]
		s.Equal(s.now.Add(14*24*time.Hour), golfCard.ExpiresAt)
		s.NotEmpty(golfCard.PolicyNumber)
		s.Equal("Golfers Insurance, option B", golfCard.Description)

		paCard := overview.Products[3].Quotes[0]
		s.Empty(paCard.PolicyNumber)
		s.Equal("Otieno Odhiambo", paCard.HolderName)
	})
}

func TestDashboardHandler(t *testing.T) {
	quotes := quoteservice.New(
		store.NewKV(kv.NewMemory(), slog.Default()),
		rating.NewCalculator(rating.Default(), 130.0),
	)
	_, err := quotes.CreateGolf(context.Background(),
		models.Holder{FullName: "Wanjiku Kamau", Email: "w@example.com", Phone: "+254700000001"},
		rating.GolfInput{CoverOption: "A"},
	)
	require.NoError(t, err)

	r := chi.NewRouter()
	NewHandler(NewService(quotes), slog.Default()).Register(r)

	rec := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/dashboard"))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := testutil.UnmarshalResponse[Overview](t, rec)
	assert.Len(t, resp.Products, 4)
	assert.Equal(t, 1, resp.Totals.Quotes)
	assert.Equal(t, 1, resp.Totals.Pending)
}
