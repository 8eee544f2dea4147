package rating

import "time"

// TravelInput is the validated quotation form for the travel product.
type TravelInput struct {
	StartDate    time.Time
	EndDate      time.Time
	Travelers    int
	Plan         string // AFRICA, ASIA, EUROPE, BASIC, PLUS, EXTRA
	WinterSports bool
	DateOfBirth  time.Time // lead traveler; zero value skips the age adjustment
}

// GolfInput selects one of the flat-premium golfer cover options.
type GolfInput struct {
	CoverOption string // A, B, C
}

// MarineInput rates a single cargo shipment.
type MarineInput struct {
	SumInsured   float64
	Clause       string // ICC_A, ICC_B, ICC_C
	Intermediary bool   // commission is reported for intermediaries only
}

// AccidentInput selects a personal-accident cover cell.
type AccidentInput struct {
	CoverOption        string // A through H
	AgeRange           string // "19-40" or "41-70"
	ExcludedActivities bool
	ExtensionOfCover   bool
}

// Breakdown is the premium computation result embedded in a quote. All
// monetary fields are in Currency; TotalPayableKES is the collectible amount
// after the fixed conversion (equal to TotalPayable for KES products).
type Breakdown struct {
	Currency         string  `json:"currency"`
	BaseRate         float64 `json:"base_rate"`
	Subtotal         float64 `json:"subtotal"`
	DurationDays     int     `json:"duration_days,omitempty"`
	GroupDiscountPct float64 `json:"group_discount_pct,omitempty"`
	GroupDiscount    float64 `json:"group_discount,omitempty"`
	AgeAdjustmentPct float64 `json:"age_adjustment_pct,omitempty"`
	AgeAdjustment    float64 `json:"age_adjustment,omitempty"`
	RiderSurcharge   float64 `json:"rider_surcharge,omitempty"`

	// Marine statutory components.
	PHCF         float64 `json:"phcf,omitempty"`
	TrainingLevy float64 `json:"training_levy,omitempty"`
	StampDuty    float64 `json:"stamp_duty,omitempty"`
	Commission   float64 `json:"commission,omitempty"`

	TotalPayable    float64 `json:"total_payable"`
	TotalPayableKES float64 `json:"total_payable_kes"`
}
