package product

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"voltio_back_end/internal/cache"
	"voltio_back_end/internal/gateway"
	"voltio_back_end/internal/models"
)

type Handler struct {
	gw *gateway.Client
}

func NewHandler(gw *gateway.Client) *Handler {
	return &Handler{gw: gw}
}

//
// 📦 GET /api/products
//
// Filtrage et tri côté serveur : simple traduction prédicat + tri sur la
// liste de la passerelle, pas un moteur de recherche.
func (h *Handler) GetProducts(c *gin.Context) {
	var filter models.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filtres invalides"})
		return
	}

	products, err := h.listProductsCached(c)
	if err != nil {
		log.Println("❌ Erreur catalogue:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Catalogue indisponible"})
		return
	}

	filtered := applyFilter(products, filter)

	c.JSON(http.StatusOK, gin.H{
		"products": filtered,
		"count":    len(filtered),
	})
}

//
// 📦 GET /api/products/:id
//
func (h *Handler) GetProductByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	product, err := h.gw.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, product)
}

//
// 🏷️ GET /api/categories
//
func (h *Handler) GetCategories(c *gin.Context) {
	if data, err := cache.GetCache("categories"); err == nil && data != "" {
		var categories []models.Category
		if json.Unmarshal([]byte(data), &categories) == nil {
			c.JSON(http.StatusOK, gin.H{"categories": categories})
			return
		}
	}

	categories, err := h.gw.ListCategories(c.Request.Context())
	if err != nil {
		log.Println("❌ Erreur catégories:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Catégories indisponibles"})
		return
	}

	if data, err := json.Marshal(categories); err == nil {
		cache.SetCache("categories", data, cache.CategoryCacheTTL)
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// listProductsCached lit le catalogue via le cache Redis (TTL court : le
// checkout, lui, relit toujours la passerelle directement)
func (h *Handler) listProductsCached(c *gin.Context) ([]models.Product, error) {
	if data, err := cache.GetCache("products"); err == nil && data != "" {
		var products []models.Product
		if json.Unmarshal([]byte(data), &products) == nil {
			return products, nil
		}
	}

	products, err := h.gw.ListProducts(c.Request.Context())
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		cache.SetCache("products", data, cache.ProductCacheTTL)
	}

	return products, nil
}

func applyFilter(products []models.Product, filter models.ProductFilter) []models.Product {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		if filter.InStockOnly && p.Stock <= 0 {
			continue
		}
		out = append(out, p)
	}

	switch filter.SortBy {
	case "price_asc":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case "price_desc":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case "name_asc":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case "name_desc":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	}

	return out
}
