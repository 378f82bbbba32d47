package models

// Valeurs fixes de la passerelle commandes (étiquettes, pas de vraie transaction)
const (
	PaymentTypeCard = 1 // "Tarjeta"

	OrderStatusPending = 1 // "Pendiente"

	DeliveryMethodPickup = 1
)

// Bill est la facture créée en premier par le checkout.
// BillNumber doit être unique par facture (généré côté serveur, préfixe "B-").
type Bill struct {
	ID          int     `json:"id_key,omitempty"`
	ClientID    int     `json:"client_id"`
	Total       float64 `json:"total"`
	BillNumber  string  `json:"bill_number"`
	Date        string  `json:"date"` // YYYY-MM-DD
	PaymentType int     `json:"payment_type"`
}

// Order référence sa facture via BillID, jamais réassigné après création.
type Order struct {
	ID             int     `json:"id_key,omitempty"`
	ClientID       int     `json:"client_id"`
	Total          float64 `json:"total"`
	Status         int     `json:"status"`
	DeliveryMethod int     `json:"delivery_method"`
	Date           string  `json:"date"` // RFC3339
	BillID         int     `json:"bill_id"`
}

// OrderDetail fige le prix d'achat : Price est le prix au moment du checkout,
// indépendant des évolutions ultérieures du catalogue.
type OrderDetail struct {
	ID        int     `json:"id_key,omitempty"`
	OrderID   int     `json:"order_id"`
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
