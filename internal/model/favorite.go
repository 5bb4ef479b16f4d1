package model

// FavoriteProduct links a user to a product they marked as favorite.
// The (UserID, ProductID) pair is unique: the table carries a composite
// unique key, so a concurrent double-add resolves to one row and one
// duplicate-key error instead of two rows.
type FavoriteProduct struct {
	ID        uint64 // favorite_products.id
	UserID    uint64 // favorite_products.user_id
	ProductID uint64 // favorite_products.product_id
}
