package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// GatewayURL retourne l'URL de base de la passerelle catalogue/commandes
func GatewayURL() string {
	u := os.Getenv("GATEWAY_URL")
	if u == "" {
		u = "http://localhost:3000"
	}
	return u
}
