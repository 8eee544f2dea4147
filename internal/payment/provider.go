// Package payment collects premiums and activates the paid quote. The
// provider boundary keeps the simulated gateway swappable for a real one.
package payment

import (
	"context"
	"time"

	dErrors "bima/pkg/domain-errors"
)

// Method is the collection channel offered at checkout.
type Method string

const (
	MethodSTKPush Method = "stk"
	MethodPaybill Method = "paybill"
	MethodCard    Method = "card"
)

// ParseMethod validates a payment method received at a trust boundary.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodSTKPush, MethodPaybill, MethodCard:
		return Method(s), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown payment method: "+s)
	}
}

// Request describes one charge attempt.
type Request struct {
	Amount      float64
	Currency    string
	Payer       string // phone number for mobile money, masked PAN for card
	Reference   string // quote ID the charge settles
	Description string
	Method      Method
}

// Result is a successful collection.
type Result struct {
	Receipt string
	PaidAt  time.Time
}

// Provider executes charges. Implementations must respect context
// cancellation; a cancelled charge is treated as failed.
type Provider interface {
	Charge(ctx context.Context, req Request) (Result, error)
}
