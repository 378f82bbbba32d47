package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"voltio_back_end/internal/models"
)

func GenerateJWT(client models.Client) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}

	claims := jwt.MapClaims{
		"user_id": client.ID,
		"email":   client.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
