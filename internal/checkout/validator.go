package checkout

import (
	"fmt"

	"voltio_back_end/internal/models"
)

// SnapshotByID indexe un instantané du catalogue par id produit
func SnapshotByID(products []models.Product) map[int]models.Product {
	snapshot := make(map[int]models.Product, len(products))
	for _, p := range products {
		snapshot[p.ID] = p
	}
	return snapshot
}

// ValidateStock confronte chaque ligne du panier à l'instantané du catalogue.
// Fonction pure : aucun effet de bord, résultat déterministe dans l'ordre des
// lignes du panier. On ne s'arrête pas à la première faute, l'appelant doit
// pouvoir présenter la liste complète en un seul message.
func ValidateStock(items []models.CartItem, snapshot map[int]models.Product) []string {
	var faults []string

	for _, item := range items {
		product, ok := snapshot[item.ProductID]
		if !ok {
			faults = append(faults, fmt.Sprintf("Le produit %q n'est plus disponible.", item.Name))
			continue
		}
		if item.Quantity > product.Stock {
			faults = append(faults, fmt.Sprintf(
				"Stock insuffisant pour %q. Disponible: %d, en panier: %d.",
				item.Name, product.Stock, item.Quantity))
		}
	}

	return faults
}
