package model

import "time"

// Product categories as stored in the `products` table. The set is fixed:
// category listings and payload validation both check against it.
const (
	CategoryDesserts     = "Postres"
	CategoryBreakfasts   = "Desayunos"
	CategoryCakes        = "Pasteles"
	CategoryArrangements = "Arreglos"
)

// Categories lists every valid product category.
var Categories = []string{CategoryDesserts, CategoryBreakfasts, CategoryCakes, CategoryArrangements}

// ValidCategory reports whether c is a known category. Matching is
// case-sensitive, the stored values are capitalized.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Product is a catalog item offered by the shop. Price is the unit price;
// reservation views multiply it by the reserved amount at query time, so
// editing the price changes what existing reservations display.
type Product struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
