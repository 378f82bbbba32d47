package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voltio_back_end/internal/cache"
)

const (
	// Limites par endpoint
	LoginMaxAttempts    = 5
	CheckoutMaxAttempts = 10

	// Durées de cooldown
	LoginCooldown    = 15 * time.Minute
	CheckoutCooldown = 1 * time.Minute
)

// LoginRateLimit limite les tentatives de connexion par email
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Lire le body sans le consommer
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			// Body illisible : on laisse le handler de login trancher
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			c.Next()
			return
		}

		var input struct {
			Email string `json:"email"`
		}

		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			c.Next()
			return
		}

		// Remettre le body pour les handlers suivants
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		key := "login_attempts:" + input.Email
		count, err := cache.IncrementRateLimit(key, LoginCooldown)
		if err == nil && count > LoginMaxAttempts {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("Trop de tentatives de connexion. Réessayez dans %d minutes", int(LoginCooldown.Minutes())),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CheckoutRateLimit limite les déclenchements de checkout par utilisateur
func CheckoutRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt("user_id")
		if userID == 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("checkout_attempts:%d", userID)
		count, err := cache.IncrementRateLimit(key, CheckoutCooldown)
		if err == nil && count > CheckoutMaxAttempts {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Trop de tentatives de paiement, patientez une minute",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
