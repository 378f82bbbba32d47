package user

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket gère la synchronisation temps réel du panier
func (h *CartHandler) CartWebSocket(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	// Upgrade vers WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()

	// S'abonner au canal Redis pour ce client
	pubsub := h.store.Subscribe(ctx, userID)
	defer pubsub.Close()

	ch := pubsub.Channel()

	// Envoyer un message de connexion
	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	// Boucle d'écoute
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}

			items, err := h.store.Items(ctx, userID)
			if err != nil {
				log.Printf("⚠️ Erreur lecture panier pour le websocket: %v", err)
				continue
			}

			total := 0.0
			for _, item := range items {
				total += item.Price * float64(item.Quantity)
			}

			if err := conn.WriteJSON(map[string]interface{}{
				"type":  "cart_updated",
				"items": items,
				"total": total,
				"count": len(items),
			}); err != nil {
				log.Printf("⚠️ Connexion websocket fermée: %v", err)
				return
			}

		case <-ctx.Done():
			return
		}
	}
}
