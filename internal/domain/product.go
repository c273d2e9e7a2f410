package domain

import "strconv"

// Product is a catalog item. Products are shared read-only reference
// data from the storefront's point of view; only administrators mutate
// them.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// FormatPrice renders a price with two decimal places, the way the
// storefront displays money.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
