package models

import (
	"encoding/json"
	"time"

	"bima/internal/rating"
	"bima/pkg/domain"
	dErrors "bima/pkg/domain-errors"
)

// Holder is the prospective policyholder captured on the quotation form.
type Holder struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// PaymentInfo records the collection that activated a quote.
type PaymentInfo struct {
	Method    string    `json:"method"`
	Reference string    `json:"reference"`
	Receipt   string    `json:"receipt"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	PaidAt    time.Time `json:"paid_at"`
}

// Policy is issued exactly once, when the quote activates. Cover runs one
// year from issue.
type Policy struct {
	Number         domain.PolicyNumber `json:"number"`
	IssuedAt       time.Time           `json:"issued_at"`
	StartDate      time.Time           `json:"start_date"`
	EndDate        time.Time           `json:"end_date"`
	CertificateURL string              `json:"certificate_url"`
}

// NewPolicy issues a policy for an activated quote. The certificate URL is a
// stub; certificate rendering is not part of this service.
func NewPolicy(product domain.ProductType, quoteID domain.QuoteID, now time.Time) Policy {
	return Policy{
		Number:         domain.NewPolicyNumber(product, now),
		IssuedAt:       now,
		StartDate:      now,
		EndDate:        now.AddDate(1, 0, 0),
		CertificateURL: "/certificates/" + quoteID.String() + ".pdf",
	}
}

// Quote is the aggregate root for one premium quotation.
//
// Invariants:
//   - ID, Product, and CreatedAt are immutable after construction
//   - Status transitions pending -> active only, applied atomically with
//     Payment and Policy (an active quote always carries both)
//   - Breakdown is the rating output at creation time and never re-priced
type Quote struct {
	ID        domain.QuoteID     `json:"id"`
	Product   domain.ProductType `json:"product"`
	Status    Status             `json:"status"`
	Holder    Holder             `json:"holder"`
	Option    string             `json:"option"`
	Details   json.RawMessage    `json:"details"`
	Breakdown rating.Breakdown   `json:"breakdown"`
	Payment   *PaymentInfo       `json:"payment,omitempty"`
	Policy    *Policy            `json:"policy,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewQuote constructs a pending quote. Option is the chosen plan or cover
// code; Details is the validated product form echoed back to clients and
// opaque to the lifecycle layer.
func NewQuote(product domain.ProductType, holder Holder, option string, details json.RawMessage, breakdown rating.Breakdown, now time.Time) (*Quote, error) {
	if !product.Valid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown product type")
	}
	if holder.FullName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "holder name cannot be empty")
	}
	return &Quote{
		ID:        domain.NewQuoteID(product, now),
		Product:   product,
		Status:    StatusPending,
		Holder:    holder,
		Option:    option,
		Details:   details,
		Breakdown: breakdown,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (q *Quote) IsActive() bool {
	return q.Status == StatusActive
}

// ExpiresAt is the end of the quote's validity window for display purposes.
// Activation is not blocked on it.
func (q *Quote) ExpiresAt(validity time.Duration) time.Time {
	return q.CreatedAt.Add(validity)
}

// CanActivate checks whether the quote may transition to active. Use with
// ApplyActivation in Execute callbacks.
func (q *Quote) CanActivate() error {
	if !q.Status.CanTransitionTo(StatusActive) {
		return dErrors.New(dErrors.CodeInvariantViolation, "quote is already active")
	}
	return nil
}

// ApplyActivation marks the quote active, attaching the payment record and
// the issued policy. Call CanActivate first to validate the transition.
func (q *Quote) ApplyActivation(payment PaymentInfo, policy Policy, now time.Time) {
	q.Status = StatusActive
	q.Payment = &payment
	q.Policy = &policy
	q.UpdatedAt = now
}
