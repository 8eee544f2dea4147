// Package rating computes premium breakdowns from static rate tables. All
// functions are pure: same inputs and book, same breakdown, no side effects.
// Lookup misses are explicit errors, never a silent zero premium.
package rating

import (
	"math"
	"time"

	dErrors "bima/pkg/domain-errors"
)

// Typed calculation failures. Callers treat these as validation errors, not
// zero-premium placeholders.
var (
	ErrNoDurationTier = dErrors.New(dErrors.CodeInvalidInput, "trip duration exceeds the longest covered tier")
	ErrNoRate         = dErrors.New(dErrors.CodeInvalidInput, "no rate configured for the selected option")
)

// Calculator evaluates premiums against one rate book and a fixed USD/KES
// exchange rate.
type Calculator struct {
	book     RateBook
	usdToKES float64
}

func NewCalculator(book RateBook, usdToKES float64) *Calculator {
	return &Calculator{book: book, usdToKES: usdToKES}
}

// Travel rates a trip. The duration in days is inclusive of both travel days.
// Premiums are in USD; TotalPayableKES applies the fixed conversion.
func (c *Calculator) Travel(in TravelInput, now time.Time) (Breakdown, error) {
	if in.Travelers < 1 {
		return Breakdown{}, dErrors.New(dErrors.CodeInvalidInput, "traveler count must be at least 1")
	}
	if in.EndDate.Before(in.StartDate) {
		return Breakdown{}, dErrors.New(dErrors.CodeInvalidInput, "end date precedes start date")
	}

	days := durationDays(in.StartDate, in.EndDate)
	tier, ok := c.tierFor(days)
	if !ok {
		return Breakdown{}, ErrNoDurationTier
	}

	baseRate, ok := c.book.TravelRates[tier][in.Plan]
	if !ok {
		return Breakdown{}, ErrNoRate
	}

	subtotal := baseRate * float64(in.Travelers)

	discountPct := c.groupDiscountPct(in.Travelers)
	discount := subtotal * discountPct

	agePct := 0.0
	if !in.DateOfBirth.IsZero() {
		agePct = c.ageAdjustmentPct(now.Year() - in.DateOfBirth.Year())
	}
	ageAdj := subtotal * agePct

	rider := 0.0
	if in.WinterSports {
		rider = subtotal * c.book.WinterSportsPct
	}

	total := subtotal - discount + ageAdj + rider
	if total < 0 {
		total = 0
	}

	return Breakdown{
		Currency:         "USD",
		BaseRate:         baseRate,
		Subtotal:         subtotal,
		DurationDays:     days,
		GroupDiscountPct: discountPct,
		GroupDiscount:    discount,
		AgeAdjustmentPct: agePct,
		AgeAdjustment:    ageAdj,
		RiderSurcharge:   rider,
		TotalPayable:     total,
		TotalPayableKES:  total * c.usdToKES,
	}, nil
}

// Golf rates the flat annual golfer cover.
func (c *Calculator) Golf(in GolfInput) (Breakdown, error) {
	premium, ok := c.book.GolfPremiums[in.CoverOption]
	if !ok {
		return Breakdown{}, ErrNoRate
	}
	return Breakdown{
		Currency:        "KES",
		BaseRate:        premium,
		Subtotal:        premium,
		TotalPayable:    premium,
		TotalPayableKES: premium,
	}, nil
}

// Marine rates a cargo shipment: clause rate on sum insured plus the
// statutory PHCF, training levy, and stamp duty. Commission is reported for
// intermediaries but never added to the payable total.
func (c *Calculator) Marine(in MarineInput) (Breakdown, error) {
	if in.SumInsured < c.book.MarineMinSumInsured {
		return Breakdown{}, dErrors.New(dErrors.CodeInvalidInput, "sum insured below the minimum insurable value")
	}
	rate, ok := c.book.MarineClauseRates[in.Clause]
	if !ok {
		return Breakdown{}, ErrNoRate
	}

	base := in.SumInsured * rate
	phcf := in.SumInsured * c.book.MarinePHCFRate
	levy := base * c.book.MarineTrainingLevy
	commission := 0.0
	if in.Intermediary {
		commission = base * c.book.MarineCommission
	}
	total := base + phcf + levy + c.book.MarineStampDuty

	return Breakdown{
		Currency:        "KES",
		BaseRate:        rate,
		Subtotal:        base,
		PHCF:            phcf,
		TrainingLevy:    levy,
		StampDuty:       c.book.MarineStampDuty,
		Commission:      commission,
		TotalPayable:    total,
		TotalPayableKES: total,
	}, nil
}

// Accident rates a personal-accident cover cell. The extension uplift applies
// only when the proposer both engages in excluded activities and buys the
// extension.
func (c *Calculator) Accident(in AccidentInput) (Breakdown, error) {
	premium, ok := c.book.AccidentPremiums[in.CoverOption][in.AgeRange]
	if !ok {
		return Breakdown{}, ErrNoRate
	}

	total := premium
	rider := 0.0
	if in.ExcludedActivities && in.ExtensionOfCover {
		rider = premium * c.book.AccidentExtensionPct
		total = premium + rider
	}

	return Breakdown{
		Currency:        "KES",
		BaseRate:        premium,
		Subtotal:        premium,
		RiderSurcharge:  rider,
		TotalPayable:    total,
		TotalPayableKES: total,
	}, nil
}

// durationDays counts both the departure and return day, matching how the
// underwriter's tables are quoted.
func durationDays(start, end time.Time) int {
	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours()/24)) + 1
}

// tierFor selects the first ladder boundary the duration does not exceed.
func (c *Calculator) tierFor(days int) (int, bool) {
	for _, boundary := range c.book.TravelTiers {
		if days <= boundary {
			return boundary, true
		}
	}
	return 0, false
}

// groupDiscountPct resolves the traveler-count ladder highest band first, so
// overlapping bands can never understate the discount.
func (c *Calculator) groupDiscountPct(travelers int) float64 {
	for _, band := range c.book.GroupDiscountBands {
		if travelers >= band.MinTravelers {
			return band.Pct
		}
	}
	return 0
}

func (c *Calculator) ageAdjustmentPct(age int) float64 {
	for _, bracket := range c.book.AgeBrackets {
		if age >= bracket.MinAge {
			return bracket.Pct
		}
	}
	return 0
}
