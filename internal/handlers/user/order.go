package user

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voltio_back_end/internal/gateway"
)

type OrderHandler struct {
	gw *gateway.Client
}

func NewOrderHandler(gw *gateway.Client) *OrderHandler {
	return &OrderHandler{gw: gw}
}

// ✅ Récupère toutes les commandes de l'utilisateur connecté
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	orders, err := h.gw.OrdersByClient(c.Request.Context(), userID)
	if err != nil {
		log.Println("❌ Erreur récupération commandes:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	log.Printf("✅ %d commandes trouvées pour le client %d", len(orders), userID)

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// ✅ Récupère toutes les factures de l'utilisateur connecté
func (h *OrderHandler) GetMyBills(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	bills, err := h.gw.BillsByClient(c.Request.Context(), userID)
	if err != nil {
		log.Println("❌ Erreur récupération factures:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur récupération factures"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

// ✅ Récupère les détails d'une commande, enrichis des noms de produits
func (h *OrderHandler) GetOrderDetails(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	ctx := c.Request.Context()

	// Sécurité : on vérifie que la commande appartient bien à l'utilisateur
	orders, err := h.gw.OrdersByClient(ctx, userID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	owned := false
	for _, o := range orders {
		if o.ID == orderID {
			owned = true
			break
		}
	}
	if !owned {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	details, err := h.gw.OrderDetailsByOrder(ctx, orderID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur récupération détails"})
		return
	}

	// Enrichir avec les noms de produits du catalogue
	products, err := h.gw.ListProducts(ctx)
	names := map[int]string{}
	if err == nil {
		for _, p := range products {
			names[p.ID] = p.Name
		}
	}

	type detailWithName struct {
		ID          int     `json:"id_key"`
		OrderID     int     `json:"order_id"`
		ProductID   int     `json:"product_id"`
		ProductName string  `json:"product_name,omitempty"`
		Quantity    int     `json:"quantity"`
		Price       float64 `json:"price"`
	}

	out := make([]detailWithName, 0, len(details))
	for _, d := range details {
		out = append(out, detailWithName{
			ID:          d.ID,
			OrderID:     d.OrderID,
			ProductID:   d.ProductID,
			ProductName: names[d.ProductID],
			Quantity:    d.Quantity,
			Price:       d.Price,
		})
	}

	c.JSON(http.StatusOK, gin.H{"details": out})
}
