package user

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"voltio_back_end/internal/gateway"
	"voltio_back_end/internal/models"
	"voltio_back_end/internal/utils"
)

type AuthHandler struct {
	gw *gateway.Client
}

func NewAuthHandler(gw *gateway.Client) *AuthHandler {
	return &AuthHandler{gw: gw}
}

//
// 🟢 POST /api/auth/register
//
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	existing, err := h.gw.ClientByEmail(c.Request.Context(), input.Email)
	if err != nil {
		log.Println("❌ Erreur passerelle clients:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Service indisponible"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte existe déjà avec cet email"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création du compte"})
		return
	}

	created, err := h.gw.CreateClient(c.Request.Context(), models.Client{
		Name:     input.Name,
		Email:    input.Email,
		Password: hash,
	})
	if err != nil {
		log.Println("❌ Erreur création client:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur création du compte"})
		return
	}

	token, err := utils.GenerateJWT(*created)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du token"})
		return
	}

	log.Printf("✅ Nouveau client inscrit: %s (#%d)", created.Email, created.ID)

	created.Password = ""
	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  created,
	})
}

//
// 🟢 POST /api/auth/login
//
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	client, err := h.gw.ClientByEmail(c.Request.Context(), input.Email)
	if err != nil {
		log.Println("❌ Erreur passerelle clients:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Service indisponible"})
		return
	}
	if client == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, client.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	token, err := utils.GenerateJWT(*client)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du token"})
		return
	}

	client.Password = ""
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  client,
	})
}

//
// 🔒 GET /api/auth/me
//
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	client, err := h.gw.GetClient(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profil introuvable"})
		return
	}

	client.Password = ""
	c.JSON(http.StatusOK, client)
}
