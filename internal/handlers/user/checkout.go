package user

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voltio_back_end/internal/cart"
	"voltio_back_end/internal/checkout"
	"voltio_back_end/internal/models"
	"voltio_back_end/internal/utils"
)

type CheckoutHandler struct {
	coord *checkout.Coordinator
	store *cart.Store
}

func NewCheckoutHandler(coord *checkout.Coordinator, store *cart.Store) *CheckoutHandler {
	return &CheckoutHandler{coord: coord, store: store}
}

//
// 💳 POST /api/checkout
//
// Convertit le panier en facture + commande + détails. Quel que soit l'échec,
// le panier reste intact pour que l'utilisateur puisse relancer sans tout
// re-remplir ; il n'est vidé que sur succès.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID := c.GetInt("user_id")
	email := c.GetString("email")

	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx := c.Request.Context()

	// 🔒 Geler le panier pour la durée de la tentative
	locked, err := h.store.Lock(ctx, userID)
	if err != nil {
		log.Println("❌ Erreur verrou panier:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
		return
	}
	if !locked {
		c.JSON(http.StatusConflict, gin.H{"error": "Un paiement est déjà en cours"})
		return
	}

	// Contexte neuf pour le déverrouillage et le vidage : ces effets doivent
	// aboutir même si le client a coupé la connexion après les écritures
	after, cancelAfter := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelAfter()
	defer h.store.Unlock(after, userID)

	items, err := h.store.Items(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le panier est vide"})
		return
	}

	result, err := h.coord.Checkout(ctx, userID, items)
	if err != nil {
		h.checkoutError(c, err)
		return
	}

	// ✅ Succès : le panier est vidé, la confirmation part en arrière-plan
	if err := h.store.Clear(after, userID); err != nil {
		log.Printf("⚠️ Panier %d non vidé après checkout: %v", userID, err)
	}

	if email != "" {
		go sendConfirmation(email, result, items)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Commande confirmée",
		"order_id": result.OrderID,
		"bill_id":  result.BillID,
		"subtotal": result.Subtotal,
		"shipping": result.Shipping,
		"total":    result.Total,
	})
}

func (h *CheckoutHandler) checkoutError(c *gin.Context, err error) {
	var vErr *checkout.ValidationError
	switch {
	case errors.As(err, &vErr):
		// Fautes de stock agrégées, une par ligne fautive
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Stock insuffisant",
			"faults": vErr.Faults,
		})
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le panier est vide"})
	case errors.Is(err, checkout.ErrCheckoutInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "Un paiement est déjà en cours"})
	default:
		// On ne détaille pas l'étape qui a échoué à l'utilisateur
		log.Println("❌ Échec checkout:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Impossible de finaliser la commande. Réessayez."})
	}
}

func sendConfirmation(email string, result *checkout.Result, items []models.CartItem) {
	qr, err := utils.GenerateOrderQR(result.OrderID, result.BillNumber)
	if err != nil {
		log.Printf("⚠️ QR de retrait non généré pour la commande #%d: %v", result.OrderID, err)
		qr = nil
	}

	if err := utils.SendOrderConfirmationEmail(email, result.OrderID, result.Total, items, qr); err != nil {
		log.Printf("⚠️ Email de confirmation non envoyé pour la commande #%d: %v", result.OrderID, err)
	}
}
