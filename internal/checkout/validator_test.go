package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltio_back_end/internal/models"
)

func snapshot(products ...models.Product) map[int]models.Product {
	return SnapshotByID(products)
}

func TestValidateStock_AllLinesValid(t *testing.T) {
	items := []models.CartItem{
		{ProductID: 1, Name: "Clavier mécanique", Price: 10.00, Quantity: 2},
		{ProductID: 2, Name: "Souris sans fil", Price: 25.00, Quantity: 1},
	}
	snap := snapshot(
		models.Product{ID: 1, Name: "Clavier mécanique", Stock: 5},
		models.Product{ID: 2, Name: "Souris sans fil", Stock: 1},
	)

	faults := ValidateStock(items, snap)

	assert.Empty(t, faults)
}

func TestValidateStock_ProductNoLongerAvailable(t *testing.T) {
	items := []models.CartItem{
		{ProductID: 1, Name: "Clavier mécanique", Quantity: 1},
		{ProductID: 99, Name: "Webcam HD", Quantity: 1},
	}
	snap := snapshot(models.Product{ID: 1, Stock: 10})

	faults := ValidateStock(items, snap)

	require.Len(t, faults, 1)
	assert.Contains(t, faults[0], "Webcam HD")
	assert.Contains(t, faults[0], "n'est plus disponible")
}

func TestValidateStock_InsufficientStock_CitesQuantities(t *testing.T) {
	// Scénario : stock 1 en catalogue, 2 en panier
	items := []models.CartItem{
		{ProductID: 1, Name: "Clavier mécanique", Price: 10.00, Quantity: 2},
	}
	snap := snapshot(models.Product{ID: 1, Stock: 1})

	faults := ValidateStock(items, snap)

	require.Len(t, faults, 1)
	assert.Contains(t, faults[0], "Clavier mécanique")
	assert.Contains(t, faults[0], "Disponible: 1")
	assert.Contains(t, faults[0], "en panier: 2")
}

func TestValidateStock_CollectsAllFaultsInCartOrder(t *testing.T) {
	// Pas de court-circuit : chaque ligne fautive produit sa faute,
	// dans l'ordre du panier
	items := []models.CartItem{
		{ProductID: 1, Name: "Produit disparu", Quantity: 1},
		{ProductID: 2, Name: "Produit valide", Quantity: 1},
		{ProductID: 3, Name: "Produit épuisé", Quantity: 5},
	}
	snap := snapshot(
		models.Product{ID: 2, Stock: 10},
		models.Product{ID: 3, Stock: 2},
	)

	faults := ValidateStock(items, snap)

	require.Len(t, faults, 2)
	assert.Contains(t, faults[0], "Produit disparu")
	assert.Contains(t, faults[1], "Produit épuisé")
}

func TestValidateStock_Deterministic(t *testing.T) {
	items := []models.CartItem{
		{ProductID: 1, Name: "A", Quantity: 3},
		{ProductID: 2, Name: "B", Quantity: 7},
	}
	snap := snapshot(
		models.Product{ID: 1, Stock: 1},
		models.Product{ID: 2, Stock: 1},
	)

	first := ValidateStock(items, snap)
	second := ValidateStock(items, snap)

	assert.Equal(t, first, second)
}

func TestValidateStock_QuantityEqualToStockIsValid(t *testing.T) {
	items := []models.CartItem{{ProductID: 1, Name: "A", Quantity: 5}}
	snap := snapshot(models.Product{ID: 1, Stock: 5})

	assert.Empty(t, ValidateStock(items, snap))
}
