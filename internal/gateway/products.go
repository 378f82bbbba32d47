package gateway

import (
	"context"
	"fmt"

	"voltio_back_end/internal/models"
)

// ListProducts récupère le catalogue complet (revalidation de stock au checkout)
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.getJSON(ctx, "liste produits", "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := c.getJSON(ctx, "produit", fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.getJSON(ctx, "liste catégories", "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
