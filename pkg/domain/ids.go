// Package domain holds identifier types and the product-line enum shared by
// every layer. Keeping them here avoids import cycles between stores,
// services, and transport.
package domain

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	dErrors "bima/pkg/domain-errors"
)

// QuoteID is the unique reference of a quote within its product collection.
// Format: product prefix + last six digits of the creation timestamp + six
// random upper-case alphanumerics, e.g. "TRV482910K3M7QZ".
type QuoteID string

const idAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ0123456789"

// NewQuoteID allocates a fresh quote ID for the product line.
func NewQuoteID(product ProductType, now time.Time) QuoteID {
	millis := fmt.Sprintf("%d", now.UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	var suffix strings.Builder
	for range 6 {
		suffix.WriteByte(idAlphabet[rand.IntN(len(idAlphabet))])
	}
	return QuoteID(product.Prefix() + millis + suffix.String())
}

// ParseQuoteID validates a quote ID received at a trust boundary. The store is
// still the authority on existence; this only rejects obviously bad input.
func ParseQuoteID(s string) (QuoteID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "quote id must not be empty")
	}
	if len(s) > 64 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "quote id too long")
	}
	return QuoteID(s), nil
}

func (q QuoteID) String() string { return string(q) }

// PolicyNumber identifies an issued policy, e.g. "TRA/2026/4821".
type PolicyNumber string

// NewPolicyNumber derives a policy number from the product line and issue
// year: first three letters of the product, the year, and a random four-digit
// suffix.
func NewPolicyNumber(product ProductType, now time.Time) PolicyNumber {
	abbr := strings.ToUpper(string(product))
	if len(abbr) > 3 {
		abbr = abbr[:3]
	}
	return PolicyNumber(fmt.Sprintf("%s/%d/%d", abbr, now.Year(), 1000+rand.IntN(9000)))
}

func (p PolicyNumber) String() string { return string(p) }
