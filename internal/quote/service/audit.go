package service

import (
	"context"
	"log/slog"

	"bima/internal/audit"
	"bima/internal/quote/models"
	"bima/pkg/domain"
	"bima/pkg/requestcontext"
)

// auditEmitter tolerates a nil publisher and never fails the operation that
// emitted: a dropped trail entry is logged, not surfaced to the buyer.
type auditEmitter struct {
	logger    *slog.Logger
	publisher AuditPublisher
}

func newAuditEmitter(logger *slog.Logger, publisher AuditPublisher) *auditEmitter {
	return &auditEmitter{logger: logger, publisher: publisher}
}

func (e *auditEmitter) emit(ctx context.Context, event audit.Event) {
	if e.publisher == nil {
		return
	}
	event.UserID = requestcontext.UserID(ctx)
	if err := e.publisher.Emit(ctx, event); err != nil {
		e.logger.WarnContext(ctx, "audit emit failed",
			"action", event.Action,
			"quote_id", event.QuoteID,
			"error", err,
		)
	}
}

func (e *auditEmitter) emitQuoteCreated(ctx context.Context, quote *models.Quote) {
	e.emit(ctx, audit.Event{
		Action:  audit.ActionQuoteCreated,
		Product: string(quote.Product),
		QuoteID: quote.ID.String(),
	})
}

func (e *auditEmitter) emitQuoteActivated(ctx context.Context, quote *models.Quote) {
	detail := ""
	if quote.Policy != nil {
		detail = "policy " + quote.Policy.Number.String()
	}
	e.emit(ctx, audit.Event{
		Action:  audit.ActionQuoteActivated,
		Product: string(quote.Product),
		QuoteID: quote.ID.String(),
		Detail:  detail,
	})
}

func (e *auditEmitter) emitQuoteDeleted(ctx context.Context, product domain.ProductType, id domain.QuoteID) {
	e.emit(ctx, audit.Event{
		Action:  audit.ActionQuoteDeleted,
		Product: string(product),
		QuoteID: id.String(),
	})
}
