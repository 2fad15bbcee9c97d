package domain

// Product is a catalog product header row. JSON field names follow the
// store's column names, which is the wire format the list and single-product
// endpoints expose.
type Product struct {
	ID               int64  `json:"id"`
	Title            string `json:"product_title"`
	CategoryID       int64  `json:"category_id"`
	SubcategoryID    int64  `json:"subcategory_id"`
	SKU              string `json:"SKU"`
	ShortDescription string `json:"short_description"`
	LongDescription  string `json:"long_description"`
}

// Size is a size row belonging to exactly one product.
type Size struct {
	ID    int64  `json:"id"`
	Label string `json:"size"`
}

// Color is a color scoped to a (product, size) pair. The same color label
// may carry a different image under a different size.
type Color struct {
	ID       int64  `json:"id"`
	Label    string `json:"color"`
	ImageURL string `json:"image_url"`
}

// Variation is a priced, stocked instance of a product at a specific size
// and color. Absence of a row means the combination is not sold.
type Variation struct {
	SizeID  int64   `json:"size_id"`
	ColorID int64   `json:"color_id"`
	Price   float64 `json:"price"`
	Stock   int     `json:"stock"`
}

// PriceRange holds the min/max variation price for a product. Both fields
// are nil when the product has no variations.
type PriceRange struct {
	Min *float64 `json:"min_price"`
	Max *float64 `json:"max_price"`
}
