package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "bima/pkg/domain-errors"
)

// Simulator stands in for the payment gateway during development and demos.
// It waits the configured delay, as a real STK push would, then approves the
// charge with a synthetic receipt.
type Simulator struct {
	delay time.Duration
}

func NewSimulator(delay time.Duration) *Simulator {
	return &Simulator{delay: delay}
}

func (s *Simulator) Charge(ctx context.Context, req Request) (Result, error) {
	if req.Amount <= 0 {
		return Result{}, dErrors.New(dErrors.CodeInvalidInput, "charge amount must be positive")
	}
	if req.Payer == "" {
		return Result{}, dErrors.New(dErrors.CodeInvalidInput, "payer contact is required")
	}

	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return Result{}, dErrors.Wrap(ctx.Err(), dErrors.CodeUnavailable, "payment interrupted")
	}

	receipt := fmt.Sprintf("%s-%s",
		strings.ToUpper(string(req.Method)),
		strings.ToUpper(uuid.NewString()[:8]),
	)
	return Result{Receipt: receipt, PaidAt: time.Now()}, nil
}
