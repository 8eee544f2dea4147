package handler

import (
	"encoding/json"
	"time"

	"bima/internal/quote/models"
	"bima/internal/rating"
)

// QuoteResponse is the wire shape of a quote.
type QuoteResponse struct {
	ID        string           `json:"id"`
	Product   string           `json:"product"`
	Status    string           `json:"status"`
	Holder    HolderResponse   `json:"holder"`
	Option    string           `json:"option"`
	Details   json.RawMessage  `json:"details,omitempty"`
	Breakdown rating.Breakdown `json:"breakdown"`
	Payment   *PaymentResponse `json:"payment,omitempty"`
	Policy    *PolicyResponse  `json:"policy,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

type HolderResponse struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type PaymentResponse struct {
	Method   string    `json:"method"`
	Receipt  string    `json:"receipt"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
	PaidAt   time.Time `json:"paid_at"`
}

type PolicyResponse struct {
	Number         string    `json:"number"`
	IssuedAt       time.Time `json:"issued_at"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	CertificateURL string    `json:"certificate_url"`
}

// FromQuote maps a quote to its wire shape. ExpiresAt is derived from the
// validity window; it is display guidance, not an enforced cutoff.
func FromQuote(q *models.Quote, validity time.Duration) QuoteResponse {
	resp := QuoteResponse{
		ID:        q.ID.String(),
		Product:   string(q.Product),
		Status:    string(q.Status),
		Holder:    HolderResponse(q.Holder),
		Option:    q.Option,
		Details:   q.Details,
		Breakdown: q.Breakdown,
		CreatedAt: q.CreatedAt,
		ExpiresAt: q.ExpiresAt(validity),
	}
	if q.Payment != nil {
		resp.Payment = &PaymentResponse{
			Method:   q.Payment.Method,
			Receipt:  q.Payment.Receipt,
			Amount:   q.Payment.Amount,
			Currency: q.Payment.Currency,
			PaidAt:   q.Payment.PaidAt,
		}
	}
	if q.Policy != nil {
		resp.Policy = &PolicyResponse{
			Number:         q.Policy.Number.String(),
			IssuedAt:       q.Policy.IssuedAt,
			StartDate:      q.Policy.StartDate,
			EndDate:        q.Policy.EndDate,
			CertificateURL: q.Policy.CertificateURL,
		}
	}
	return resp
}

// ListResponse wraps a product's quote collection.
type ListResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
}

func FromQuotes(quotes []*models.Quote, validity time.Duration) ListResponse {
	out := ListResponse{Quotes: make([]QuoteResponse, 0, len(quotes))}
	for _, q := range quotes {
		out.Quotes = append(out.Quotes, FromQuote(q, validity))
	}
	return out
}
