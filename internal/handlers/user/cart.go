package user

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voltio_back_end/internal/cart"
	"voltio_back_end/internal/gateway"
	"voltio_back_end/internal/models"
)

type CartHandler struct {
	store *cart.Store
	gw    *gateway.Client
}

func NewCartHandler(store *cart.Store, gw *gateway.Client) *CartHandler {
	return &CartHandler{store: store, gw: gw}
}

//
// 🛒 GET /api/cart
//
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	items, err := h.store.Items(c.Request.Context(), userID)
	if err != nil {
		log.Println("❌ Erreur lecture panier:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

//
// 🟢 POST /api/cart/add
//
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	// 🧩 Récupération du produit depuis la passerelle catalogue
	product, err := h.gw.GetProduct(c.Request.Context(), input.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	item := models.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  input.Quantity,
		ImageURL:  product.ImageURL,
	}

	items, err := h.store.Add(c.Request.Context(), userID, item)
	if err != nil {
		h.cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   items,
	})
}

//
// ✏️ PUT /api/cart/:productId
//
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	// Quantité zéro = suppression de la ligne, jamais de ligne à zéro
	items, err := h.store.UpdateQuantity(c.Request.Context(), userID, productID, input.Quantity)
	if err != nil {
		h.cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier mis à jour",
		"items":   items,
	})
}

//
// ❌ DELETE /api/cart/:productId
//
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	items, err := h.store.Remove(c.Request.Context(), userID, productID)
	if err != nil {
		h.cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   items,
	})
}

//
// 🧹 DELETE /api/cart/clear
//
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	if h.store.IsLocked(c.Request.Context(), userID) {
		h.cartError(c, cart.ErrCartLocked)
		return
	}

	if err := h.store.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
	})
}

func (h *CartHandler) cartError(c *gin.Context, err error) {
	if errors.Is(err, cart.ErrCartLocked) {
		c.JSON(http.StatusConflict, gin.H{"error": "Un paiement est en cours, panier verrouillé"})
		return
	}
	log.Println("❌ Erreur panier:", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur panier"})
}
