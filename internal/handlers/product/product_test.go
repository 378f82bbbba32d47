package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltio_back_end/internal/models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

var catalog = []models.Product{
	{ID: 1, Name: "Clavier mécanique", Description: "RGB", Price: 89.90, Stock: 4, CategoryID: 1},
	{ID: 2, Name: "Souris sans fil", Description: "Bluetooth", Price: 39.90, Stock: 0, CategoryID: 1},
	{ID: 3, Name: "Écran 27 pouces", Description: "4K", Price: 349.00, Stock: 2, CategoryID: 2},
}

func TestApplyFilter_Search(t *testing.T) {
	out := applyFilter(catalog, models.ProductFilter{Search: "souris"})

	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].ID)
}

func TestApplyFilter_SearchMatchesDescription(t *testing.T) {
	out := applyFilter(catalog, models.ProductFilter{Search: "4k"})

	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].ID)
}

func TestApplyFilter_CategoryAndPriceRange(t *testing.T) {
	out := applyFilter(catalog, models.ProductFilter{
		CategoryID: intPtr(1),
		MinPrice:   floatPtr(50),
	})

	require.Len(t, out, 1)
	assert.Equal(t, "Clavier mécanique", out[0].Name)
}

func TestApplyFilter_InStockOnly(t *testing.T) {
	out := applyFilter(catalog, models.ProductFilter{InStockOnly: true})

	require.Len(t, out, 2)
	for _, p := range out {
		assert.Positive(t, p.Stock)
	}
}

func TestApplyFilter_SortByPriceDesc(t *testing.T) {
	out := applyFilter(catalog, models.ProductFilter{SortBy: "price_desc"})

	require.Len(t, out, 3)
	assert.Equal(t, 3, out[0].ID)
	assert.Equal(t, 1, out[1].ID)
	assert.Equal(t, 2, out[2].ID)
}

func TestApplyFilter_NoFilterKeepsOrder(t *testing.T) {
	out := applyFilter(catalog, models.ProductFilter{})

	require.Len(t, out, 3)
	assert.Equal(t, 1, out[0].ID)
}
