// Package auth issues and validates agent session tokens. Accounts are a
// seeded list; the funnel has no self-service registration.
package auth

import (
	"context"
	"log/slog"
	"time"

	"bima/internal/audit"
	dErrors "bima/pkg/domain-errors"
	"bima/pkg/requestcontext"
)

// AuditPublisher is the emission port; the audit package's Publisher
// satisfies it.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	User      User
	ExpiresAt time.Time
}

// Service authenticates agents against the credential list and issues JWTs.
type Service struct {
	credentials *Credentials
	tokens      *JWTService
	publisher   AuditPublisher
	logger      *slog.Logger
	ttl         time.Duration
	delay       time.Duration
}

type serviceConfig struct {
	publisher AuditPublisher
	logger    *slog.Logger
	delay     time.Duration
}

type Option func(*serviceConfig)

func WithAuditPublisher(p AuditPublisher) Option {
	return func(c *serviceConfig) { c.publisher = p }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) { c.logger = logger }
}

// WithLoginDelay adds an artificial delay to logins, matching the latency of
// a real identity provider in demos.
func WithLoginDelay(d time.Duration) Option {
	return func(c *serviceConfig) { c.delay = d }
}

func NewService(credentials *Credentials, tokens *JWTService, ttl time.Duration, opts ...Option) *Service {
	cfg := &serviceConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Service{
		credentials: credentials,
		tokens:      tokens,
		publisher:   cfg.publisher,
		logger:      cfg.logger,
		ttl:         ttl,
		delay:       cfg.delay,
	}
}

// Login verifies the credentials and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeUnavailable, "login interrupted")
		}
	}

	user, err := s.credentials.Verify(username, password)
	if err != nil {
		s.logger.WarnContext(ctx, "login rejected",
			"username", username,
			"client_ip", requestcontext.ClientIP(ctx),
		)
		return nil, err
	}

	now := requestcontext.Now(ctx)
	token, err := s.tokens.GenerateToken(user.ID, user.Name, now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign session token")
	}

	s.emit(ctx, audit.Event{UserID: user.ID, Action: audit.ActionUserLoggedIn})
	return &Session{Token: token, User: user, ExpiresAt: now.Add(s.ttl)}, nil
}

// Logout records the sign-out. Tokens are stateless, so the client discards
// the token; there is no server-side revocation list.
func (s *Service) Logout(ctx context.Context) {
	s.emit(ctx, audit.Event{UserID: requestcontext.UserID(ctx), Action: audit.ActionUserLoggedOut})
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}
