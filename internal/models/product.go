package models

// Product tel que renvoyé par la passerelle catalogue (identifiant numérique "id_key")
type Product struct {
	ID          int     `json:"id_key"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  int     `json:"category_id"`
	ImageURL    string  `json:"image_url"`
}

type Category struct {
	ID   int    `json:"id_key"`
	Name string `json:"name"`
}

// ProductFilter traduit les filtres du catalogue (recherche, catégorie, prix, tri)
type ProductFilter struct {
	Search      string   `form:"search"`
	CategoryID  *int     `form:"category_id"`
	MinPrice    *float64 `form:"min_price"`
	MaxPrice    *float64 `form:"max_price"`
	InStockOnly bool     `form:"in_stock_only"`
	SortBy      string   `form:"sort_by"` // price_asc, price_desc, name_asc, name_desc
}
