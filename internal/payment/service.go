package payment

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bima/internal/audit"
	"bima/internal/platform/metrics"
	"bima/internal/quote/models"
	"bima/pkg/domain"
	dErrors "bima/pkg/domain-errors"
	"bima/pkg/platform/circuit"
	"bima/pkg/requestcontext"
)

var tracer = otel.Tracer("bima/internal/payment")

// QuoteLifecycle is the slice of the quote service the payment flow needs.
type QuoteLifecycle interface {
	Get(ctx context.Context, product domain.ProductType, id domain.QuoteID) (*models.Quote, error)
	Activate(ctx context.Context, product domain.ProductType, id domain.QuoteID, payment models.PaymentInfo) (*models.Quote, error)
}

// AuditPublisher is the emission port; the audit package's Publisher
// satisfies it.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service charges the premium and activates the quote on success. A failed
// charge leaves the quote pending so the buyer can retry.
type Service struct {
	provider  Provider
	quotes    QuoteLifecycle
	publisher AuditPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	breaker   *circuit.Breaker
}

type serviceConfig struct {
	publisher AuditPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	breaker   *circuit.Breaker
}

type Option func(*serviceConfig)

func WithAuditPublisher(p AuditPublisher) Option {
	return func(c *serviceConfig) { c.publisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *serviceConfig) { c.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) { c.logger = logger }
}

// WithBreaker overrides the circuit breaker guarding the provider.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *serviceConfig) { c.breaker = b }
}

func NewService(provider Provider, quotes QuoteLifecycle, opts ...Option) *Service {
	cfg := &serviceConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	breaker := cfg.breaker
	if breaker == nil {
		breaker = circuit.New("payment-provider",
			circuit.WithFailureThreshold(5),
			circuit.WithCooldown(30*time.Second),
		)
	}
	return &Service{
		provider:  provider,
		quotes:    quotes,
		publisher: cfg.publisher,
		metrics:   cfg.metrics,
		logger:    cfg.logger,
		breaker:   breaker,
	}
}

// Pay charges the quote's collectible amount and activates it. Paying an
// already active quote is a no-op returning the quote as-is; the buyer is
// never double-charged.
func (s *Service) Pay(ctx context.Context, product domain.ProductType, id domain.QuoteID, method Method, payer string) (*models.Quote, error) {
	ctx, span := tracer.Start(ctx, "payment.pay",
		trace.WithAttributes(
			attribute.String("product", string(product)),
			attribute.String("quote_id", id.String()),
			attribute.String("method", string(method)),
		))
	defer span.End()

	quote, err := s.quotes.Get(ctx, product, id)
	if err != nil {
		return nil, err
	}
	if quote.IsActive() {
		return quote, nil
	}

	if !s.breaker.Allow() {
		err := dErrors.New(dErrors.CodeUnavailable, "payment provider temporarily unavailable")
		span.RecordError(err)
		s.recordOutcome(ctx, method, "failure", quote, err)
		return nil, err
	}

	result, err := s.provider.Charge(ctx, Request{
		Amount:      quote.Breakdown.TotalPayableKES,
		Currency:    "KES",
		Payer:       payer,
		Reference:   id.String(),
		Description: product.Title() + " premium for " + id.String(),
		Method:      method,
	})
	if err != nil {
		if _, change := s.breaker.RecordFailure(); change.Opened {
			s.logger.WarnContext(ctx, "payment circuit opened", "breaker", s.breaker.Name())
		}
		span.RecordError(err)
		s.recordOutcome(ctx, method, "failure", quote, err)
		if dErrors.CodeOf(err) != dErrors.CodeInternal {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "payment provider rejected the charge")
	}

	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "payment circuit closed", "breaker", s.breaker.Name())
	}
	s.recordOutcome(ctx, method, "success", quote, nil)

	return s.quotes.Activate(ctx, product, id, models.PaymentInfo{
		Method:    string(method),
		Reference: payer,
		Receipt:   result.Receipt,
		Amount:    quote.Breakdown.TotalPayableKES,
		Currency:  "KES",
		PaidAt:    result.PaidAt,
	})
}

func (s *Service) recordOutcome(ctx context.Context, method Method, outcome string, quote *models.Quote, cause error) {
	if s.metrics != nil {
		s.metrics.PaymentsTotal.WithLabelValues(string(method), outcome).Inc()
	}
	if s.publisher == nil {
		return
	}

	action := audit.ActionPaymentSucceeded
	detail := ""
	if cause != nil {
		action = audit.ActionPaymentFailed
		detail = cause.Error()
	}
	event := audit.Event{
		UserID:  requestcontext.UserID(ctx),
		Action:  action,
		Product: string(quote.Product),
		QuoteID: quote.ID.String(),
		Detail:  detail,
	}
	if err := s.publisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", action, "error", err)
	}
}
