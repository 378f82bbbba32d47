package routes

import (
	"github.com/gin-gonic/gin"

	"voltio_back_end/internal/cart"
	"voltio_back_end/internal/checkout"
	"voltio_back_end/internal/gateway"
	"voltio_back_end/internal/handlers/product"
	"voltio_back_end/internal/handlers/user"
	"voltio_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, gw *gateway.Client, store *cart.Store, coord *checkout.Coordinator) {
	authHandler := user.NewAuthHandler(gw)
	cartHandler := user.NewCartHandler(store, gw)
	checkoutHandler := user.NewCheckoutHandler(coord, store)
	orderHandler := user.NewOrderHandler(gw)
	productHandler := product.NewHandler(gw)

	api := r.Group("/api")

	// Auth
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(), authHandler.Login)
	api.GET("/auth/me", middleware.AuthRequired(), authHandler.Me)

	// Catalogue (public)
	api.GET("/products", productHandler.GetProducts)
	api.GET("/products/:id", productHandler.GetProductByID)
	api.GET("/categories", productHandler.GetCategories)

	// Panier
	carts := api.Group("/cart", middleware.AuthRequired())
	carts.GET("", cartHandler.GetCart)
	carts.POST("/add", cartHandler.AddToCart)
	carts.PUT("/:productId", cartHandler.UpdateQuantity)
	carts.DELETE("/clear", cartHandler.ClearCart)
	carts.DELETE("/:productId", cartHandler.RemoveFromCart)
	carts.GET("/ws", cartHandler.CartWebSocket)

	// Checkout
	api.POST("/checkout", middleware.AuthRequired(), middleware.CheckoutRateLimit(), checkoutHandler.Checkout)

	// Historique profil
	orders := api.Group("/orders", middleware.AuthRequired())
	orders.GET("", orderHandler.GetMyOrders)
	orders.GET("/:id/details", orderHandler.GetOrderDetails)
	api.GET("/bills", middleware.AuthRequired(), orderHandler.GetMyBills)
}
