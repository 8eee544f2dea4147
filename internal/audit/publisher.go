package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"bima/pkg/requestcontext"
)

// ErrBufferFull is returned in async mode when the inbox is saturated. The
// event is dropped rather than blocking the request path.
var ErrBufferFull = errors.New("audit buffer full")

// Publisher captures structured audit events. By default Emit writes through
// to the sink synchronously; WithAsyncBuffer switches to a buffered channel
// drained by a background goroutine, so hot paths never wait on the sink.
type Publisher struct {
	sink   Sink
	logger *slog.Logger

	inbox     chan Event
	done      chan struct{}
	closeOnce sync.Once
}

type PublisherOption func(*Publisher)

// WithAsyncBuffer enables asynchronous emission with the given inbox size.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *Publisher) {
		p.inbox = make(chan Event, size)
	}
}

// WithLogger sets the logger used for dropped or failed events.
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(sink Sink, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		sink:   sink,
		logger: slog.Default(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		go p.drain()
	}
	return p
}

// Emit records an event, stamping the current time and the request's client
// metadata when unset. In async mode a full inbox drops the event and returns
// ErrBufferFull.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.UserAgent == "" {
		event.UserAgent = requestcontext.UserAgent(ctx)
	}

	if p.inbox == nil {
		return p.sink.Append(ctx, event)
	}

	select {
	case p.inbox <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.logger.Warn("audit event dropped", "action", event.Action, "quote_id", event.QuoteID)
		return ErrBufferFull
	}
}

// Close drains any buffered events and stops the background worker. Safe to
// call multiple times.
func (p *Publisher) Close() {
	p.closeOnce.Do(func() {
		if p.inbox == nil {
			return
		}
		close(p.inbox)
		<-p.done
	})
}

func (p *Publisher) drain() {
	defer close(p.done)
	for event := range p.inbox {
		if err := p.sink.Append(context.Background(), event); err != nil {
			p.logger.Error("audit append failed", "action", event.Action, "error", err)
		}
	}
}
