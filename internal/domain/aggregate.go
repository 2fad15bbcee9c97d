package domain

import (
	"encoding/json"
	"fmt"
)

// OutOfStock is the sentinel emitted as the stock value of a size/color
// combination that has no variation row.
const OutOfStock = "Out of Stock"

// Stock is the stock level of a size/color combination. When no variation
// exists for the combination, Available is false and the value marshals as
// the OutOfStock sentinel instead of a number.
type Stock struct {
	Units     int
	Available bool
}

// InStock returns a stock level of the given unit count.
func InStock(units int) Stock {
	return Stock{Units: units, Available: true}
}

func (s Stock) MarshalJSON() ([]byte, error) {
	if !s.Available {
		return json.Marshal(OutOfStock)
	}
	return json.Marshal(s.Units)
}

func (s *Stock) UnmarshalJSON(b []byte) error {
	var units int
	if err := json.Unmarshal(b, &units); err == nil {
		*s = Stock{Units: units, Available: true}
		return nil
	}

	var sentinel string
	if err := json.Unmarshal(b, &sentinel); err != nil {
		return fmt.Errorf("stock must be a number or %q: %w", OutOfStock, err)
	}
	if sentinel != OutOfStock {
		return fmt.Errorf("unexpected stock value %q", sentinel)
	}
	*s = Stock{}
	return nil
}

// ColorOffer is one color of a size with its correlated price and stock.
// Price is nil when the combination has no variation row; the aggregation
// never fabricates a price.
type ColorOffer struct {
	Color    string   `json:"color"`
	ImageURL string   `json:"image_url"`
	Price    *float64 `json:"price"`
	Stock    Stock    `json:"stock"`
}

// SizeVariants is one size of a product with its correlated color offers.
type SizeVariants struct {
	Size   string       `json:"size"`
	Colors []ColorOffer `json:"colors"`
}

// ProductAggregate is the denormalized product view returned to callers:
// the product header merged with its price range, derived images, and the
// nested size/color structure. It is built fresh per request and never
// persisted or cached.
type ProductAggregate struct {
	Product
	PriceMin      *float64       `json:"price_min"`
	PriceMax      *float64       `json:"price_max"`
	MainImage     *string        `json:"mainImage"`
	GalleryImages []string       `json:"galleryImages"`
	Sizes         []SizeVariants `json:"sizes"`
}
