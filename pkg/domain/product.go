package domain

import (
	dErrors "bima/pkg/domain-errors"
)

// ProductType identifies one of the four product lines. Each product owns an
// independent quote collection in the KV substrate.
type ProductType string

const (
	ProductTravel           ProductType = "travel"
	ProductGolf             ProductType = "golf"
	ProductMarine           ProductType = "marine"
	ProductPersonalAccident ProductType = "personal-accident"
)

// AllProducts lists every product line in dashboard aggregation order.
var AllProducts = []ProductType{ProductTravel, ProductGolf, ProductMarine, ProductPersonalAccident}

var productPrefixes = map[ProductType]string{
	ProductTravel:           "TRV",
	ProductGolf:             "GLF",
	ProductMarine:           "MAR",
	ProductPersonalAccident: "PA",
}

var productTitles = map[ProductType]string{
	ProductTravel:           "Travel Insurance",
	ProductGolf:             "Golfers Insurance",
	ProductMarine:           "Marine Cargo Insurance",
	ProductPersonalAccident: "Personal Accident Cover",
}

// ParseProduct validates a product type received at a trust boundary.
func ParseProduct(s string) (ProductType, error) {
	p := ProductType(s)
	if _, ok := productPrefixes[p]; !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown product type: "+s)
	}
	return p, nil
}

// Prefix returns the short reference prefix used in quote IDs.
func (p ProductType) Prefix() string { return productPrefixes[p] }

// Title returns the display title used in dashboard summaries.
func (p ProductType) Title() string { return productTitles[p] }

// Valid reports whether p is one of the known product lines.
func (p ProductType) Valid() bool {
	_, ok := productPrefixes[p]
	return ok
}
