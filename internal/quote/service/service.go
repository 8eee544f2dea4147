// Package service orchestrates the quote lifecycle: rate, persist, activate
// on payment, delete. All pricing goes through the rating calculator; the
// service never adjusts figures itself.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bima/internal/audit"
	"bima/internal/platform/metrics"
	"bima/internal/quote/models"
	"bima/internal/quote/store"
	"bima/internal/rating"
	"bima/pkg/domain"
	dErrors "bima/pkg/domain-errors"
	"bima/pkg/platform/sentinel"
	"bima/pkg/requestcontext"
)

var tracer = otel.Tracer("bima/internal/quote")

// errAlreadyActive flags the idempotent re-activation path internally.
var errAlreadyActive = errors.New("quote already active")

// AuditPublisher is the emission port; the audit package's Publisher
// satisfies it.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates quote lifecycle management for all product lines.
type Service struct {
	quotes  store.Store
	calc    *rating.Calculator
	emitter *auditEmitter
	metrics *metrics.Metrics
	logger  *slog.Logger

	validity time.Duration
	strict   bool
}

type serviceConfig struct {
	publisher AuditPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	validity  time.Duration
	strict    bool
}

type Option func(*serviceConfig)

// WithAuditPublisher attaches an audit emission sink.
func WithAuditPublisher(p AuditPublisher) Option {
	return func(c *serviceConfig) { c.publisher = p }
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *serviceConfig) { c.metrics = m }
}

// WithValidity overrides the quote validity window used for expiry display.
func WithValidity(d time.Duration) Option {
	return func(c *serviceConfig) { c.validity = d }
}

// WithStrictActivation makes re-activation of an active quote a conflict
// instead of an idempotent no-op.
func WithStrictActivation(strict bool) Option {
	return func(c *serviceConfig) { c.strict = strict }
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) { c.logger = logger }
}

func New(quotes store.Store, calc *rating.Calculator, opts ...Option) *Service {
	cfg := &serviceConfig{
		logger:   slog.Default(),
		validity: 14 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Service{
		quotes:   quotes,
		calc:     calc,
		emitter:  newAuditEmitter(cfg.logger, cfg.publisher),
		metrics:  cfg.metrics,
		logger:   cfg.logger,
		validity: cfg.validity,
		strict:   cfg.strict,
	}
}

// Validity returns the quote validity window for expiry display.
func (s *Service) Validity() time.Duration { return s.validity }

// CreateTravel rates a travel trip and stores a pending quote.
func (s *Service) CreateTravel(ctx context.Context, holder models.Holder, in rating.TravelInput) (*models.Quote, error) {
	breakdown, err := s.calc.Travel(in, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	return s.create(ctx, domain.ProductTravel, holder, in.Plan, in, breakdown)
}

// CreateGolf stores a pending quote for the flat-premium golfer cover.
func (s *Service) CreateGolf(ctx context.Context, holder models.Holder, in rating.GolfInput) (*models.Quote, error) {
	breakdown, err := s.calc.Golf(in)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, domain.ProductGolf, holder, in.CoverOption, in, breakdown)
}

// CreateMarine rates a cargo shipment and stores a pending quote.
func (s *Service) CreateMarine(ctx context.Context, holder models.Holder, in rating.MarineInput) (*models.Quote, error) {
	breakdown, err := s.calc.Marine(in)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, domain.ProductMarine, holder, in.Clause, in, breakdown)
}

// CreateAccident rates a personal-accident cell and stores a pending quote.
func (s *Service) CreateAccident(ctx context.Context, holder models.Holder, in rating.AccidentInput) (*models.Quote, error) {
	breakdown, err := s.calc.Accident(in)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, domain.ProductPersonalAccident, holder, in.CoverOption, in, breakdown)
}

func (s *Service) create(ctx context.Context, product domain.ProductType, holder models.Holder, option string, details any, breakdown rating.Breakdown) (*models.Quote, error) {
	ctx, span := tracer.Start(ctx, "quote.create",
		trace.WithAttributes(attribute.String("product", string(product))))
	defer span.End()

	raw, err := json.Marshal(details)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode quote details")
	}

	quote, err := models.NewQuote(product, holder, option, raw, breakdown, requestcontext.Now(ctx))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := s.quotes.Insert(ctx, quote); err != nil {
		span.RecordError(err)
		return nil, wrapQuoteErr(err)
	}

	s.emitter.emitQuoteCreated(ctx, quote)
	if s.metrics != nil {
		s.metrics.QuotesCreated.WithLabelValues(string(product)).Inc()
		s.metrics.PremiumTotals.WithLabelValues(string(product)).Observe(quote.Breakdown.TotalPayable)
	}
	return quote, nil
}

// Get returns one quote by product and ID.
func (s *Service) Get(ctx context.Context, product domain.ProductType, id domain.QuoteID) (*models.Quote, error) {
	quote, err := s.quotes.FindByID(ctx, product, id)
	if err != nil {
		return nil, wrapQuoteErr(err)
	}
	return quote, nil
}

// List returns every quote for a product line, oldest first.
func (s *Service) List(ctx context.Context, product domain.ProductType) ([]*models.Quote, error) {
	quotes, err := s.quotes.List(ctx, product)
	if err != nil {
		return nil, wrapQuoteErr(err)
	}
	return quotes, nil
}

// Activate transitions a pending quote to active, attaching the payment and
// issuing a policy number. Re-activating an active quote returns the quote
// unchanged unless strict activation is configured, in which case it is a
// conflict.
func (s *Service) Activate(ctx context.Context, product domain.ProductType, id domain.QuoteID, payment models.PaymentInfo) (*models.Quote, error) {
	ctx, span := tracer.Start(ctx, "quote.activate",
		trace.WithAttributes(
			attribute.String("product", string(product)),
			attribute.String("quote_id", id.String()),
		))
	defer span.End()

	now := requestcontext.Now(ctx)
	policy := models.NewPolicy(product, id, now)

	quote, err := s.quotes.Execute(ctx, product, id,
		func(q *models.Quote) error {
			if err := q.CanActivate(); err != nil {
				return errAlreadyActive
			}
			return nil
		},
		func(q *models.Quote) {
			q.ApplyActivation(payment, policy, now)
		},
	)
	if errors.Is(err, errAlreadyActive) {
		if s.strict {
			return nil, dErrors.New(dErrors.CodeConflict, "quote is already active")
		}
		return s.Get(ctx, product, id)
	}
	if err != nil {
		span.RecordError(err)
		return nil, wrapQuoteErr(err)
	}

	s.emitter.emitQuoteActivated(ctx, quote)
	if s.metrics != nil {
		s.metrics.QuotesActivated.WithLabelValues(string(product)).Inc()
	}
	return quote, nil
}

// Delete removes a quote regardless of status.
func (s *Service) Delete(ctx context.Context, product domain.ProductType, id domain.QuoteID) error {
	ctx, span := tracer.Start(ctx, "quote.delete",
		trace.WithAttributes(
			attribute.String("product", string(product)),
			attribute.String("quote_id", id.String()),
		))
	defer span.End()

	if err := s.quotes.Delete(ctx, product, id); err != nil {
		span.RecordError(err)
		return wrapQuoteErr(err)
	}

	s.emitter.emitQuoteDeleted(ctx, product, id)
	if s.metrics != nil {
		s.metrics.QuotesDeleted.WithLabelValues(string(product)).Inc()
	}
	return nil
}

func wrapQuoteErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "quote not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "quote reference already exists")
	case dErrors.CodeOf(err) != dErrors.CodeInternal:
		return err
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "quote storage failure")
	}
}
