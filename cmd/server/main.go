package main

import (
	"log"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"voltio_back_end/internal/cache"
	"voltio_back_end/internal/cart"
	"voltio_back_end/internal/checkout"
	"voltio_back_end/internal/config"
	"voltio_back_end/internal/gateway"
	"voltio_back_end/internal/routes"
)

func main() {
	config.Load()

	if err := cache.InitRedis(); err != nil {
		log.Fatalf("❌ Échec initialisation Redis: %v", err)
	}
	defer cache.CloseRedis()

	gw := gateway.New(config.GatewayURL())
	log.Println("✅ Passerelle catalogue/commandes:", config.GatewayURL())

	store := cart.NewStore(cache.RedisClient)
	coord := checkout.NewCoordinator(gw)

	r := gin.Default()
	r.Use(cors.New(corsConfig()))

	routes.RegisterRoutes(r, gw, store, coord)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Voltio lancé sur le port", port)
	r.Run(":" + port)
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		cfg.AllowOrigins = []string{"http://localhost:5173"}
	} else {
		cfg.AllowOrigins = strings.Split(origins, ",")
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")

	return cfg
}
