package rating

// RateBook carries every static table the calculator consults. It is plain
// configuration: the calculator never mutates it, and tests may supply a
// reduced book.
type RateBook struct {
	// TravelTiers is the ascending duration ladder in days. A trip falls into
	// the first tier its duration does not exceed; longer trips have no tier.
	TravelTiers []int

	// TravelRates maps tier boundary -> plan code -> per-traveler USD rate.
	TravelRates map[int]map[string]float64

	// GroupDiscountBands map a minimum traveler count to a discount fraction,
	// resolved highest-first.
	GroupDiscountBands []GroupBand

	// AgeBrackets map a minimum age to a surcharge fraction of the subtotal,
	// resolved highest-first. Negative fractions are youth rebates.
	AgeBrackets []AgeBracket

	// WinterSportsPct is the rider surcharge as a fraction of the subtotal.
	WinterSportsPct float64

	// GolfPremiums maps cover option -> flat annual KES premium.
	GolfPremiums map[string]float64

	// MarineClauseRates maps ICC clause code -> rate on sum insured.
	MarineClauseRates map[string]float64

	// Marine statutory charges.
	MarinePHCFRate      float64
	MarineTrainingLevy  float64
	MarineStampDuty     float64
	MarineCommission    float64
	MarineMinSumInsured float64

	// AccidentPremiums maps cover option -> age range -> flat KES premium.
	AccidentPremiums map[string]map[string]float64

	// AccidentExtensionPct is the uplift applied when cover is extended to
	// excluded activities.
	AccidentExtensionPct float64
}

// GroupBand is one step of the traveler-count discount ladder.
type GroupBand struct {
	MinTravelers int
	Pct          float64
}

// AgeBracket is one step of the age loading ladder.
type AgeBracket struct {
	MinAge int
	Pct    float64
}

// Default returns the canonical rate book. Figures mirror the underwriter's
// published tables: travel rates in USD per traveler, everything else in KES.
func Default() RateBook {
	return RateBook{
		TravelTiers: []int{4, 9, 15, 25, 32, 38, 62, 92, 185, 365},
		TravelRates: map[int]map[string]float64{
			4:   {"AFRICA": 12, "ASIA": 14, "EUROPE": 15, "BASIC": 20, "PLUS": 27, "EXTRA": 34},
			9:   {"AFRICA": 12, "ASIA": 14, "EUROPE": 15, "BASIC": 20, "PLUS": 27, "EXTRA": 34},
			15:  {"AFRICA": 17, "ASIA": 19, "EUROPE": 22, "BASIC": 28, "PLUS": 51, "EXTRA": 62},
			25:  {"AFRICA": 20, "ASIA": 25, "EUROPE": 30, "BASIC": 35, "PLUS": 55, "EXTRA": 67},
			32:  {"AFRICA": 25, "ASIA": 28, "EUROPE": 32, "BASIC": 38, "PLUS": 72, "EXTRA": 81},
			38:  {"AFRICA": 32, "ASIA": 33, "EUROPE": 38, "BASIC": 48, "PLUS": 90, "EXTRA": 111},
			62:  {"AFRICA": 50, "ASIA": 52, "EUROPE": 57, "BASIC": 70, "PLUS": 98, "EXTRA": 165},
			92:  {"AFRICA": 59, "ASIA": 59, "EUROPE": 74, "BASIC": 98, "PLUS": 138, "EXTRA": 179},
			185: {"AFRICA": 70, "ASIA": 70, "EUROPE": 80, "BASIC": 106, "PLUS": 193, "EXTRA": 240},
			365: {"AFRICA": 82, "ASIA": 90, "EUROPE": 103, "BASIC": 136, "PLUS": 248, "EXTRA": 295},
		},
		GroupDiscountBands: []GroupBand{
			{MinTravelers: 201, Pct: 0.25},
			{MinTravelers: 101, Pct: 0.20},
			{MinTravelers: 51, Pct: 0.15},
			{MinTravelers: 21, Pct: 0.10},
			{MinTravelers: 10, Pct: 0.05},
		},
		AgeBrackets: []AgeBracket{
			{MinAge: 76, Pct: 2.0},
			{MinAge: 66, Pct: 1.0},
		},
		WinterSportsPct: 1.0,

		GolfPremiums: map[string]float64{"A": 5000, "B": 7500, "C": 10000},

		MarineClauseRates: map[string]float64{
			"ICC_A": 0.005,
			"ICC_B": 0.0035,
			"ICC_C": 0.0025,
		},
		MarinePHCFRate:      0.05,
		MarineTrainingLevy:  0.0025,
		MarineStampDuty:     40,
		MarineCommission:    0.10,
		MarineMinSumInsured: 10000,

		AccidentPremiums: map[string]map[string]float64{
			"A": {"19-40": 1697, "41-70": 2702},
			"B": {"19-40": 2702, "41-70": 3501},
			"C": {"19-40": 5063, "41-70": 6569},
			"D": {"19-40": 8779, "41-70": 11401},
			"E": {"19-40": 15108, "41-70": 19628},
			"F": {"19-40": 23144, "41-70": 27764},
			"G": {"19-40": 31180, "41-70": 40521},
			"H": {"19-40": 40220, "41-70": 52274},
		},
		AccidentExtensionPct: 0.25,
	}
}
