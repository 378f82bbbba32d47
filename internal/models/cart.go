package models

// CartItem est une ligne du panier stocké dans Redis.
// Invariant : Quantity >= 1, une ligne à zéro est supprimée du panier.
type CartItem struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url"`
}
