package user

import (
	"log"
	"net/http"
	"strings"
	"time"

	"hanbloom_back_end/internal/config"
	"hanbloom_back_end/internal/database"
	"hanbloom_back_end/internal/models"
	"hanbloom_back_end/internal/store"
	"hanbloom_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/auth/register
func Register(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Name     string `json:"name"`
			Password string `json:"password" binding:"required,min=8"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
			return
		}

		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création compte"})
			return
		}

		newUser := &models.User{
			ID:           uuid.New(),
			Email:        strings.ToLower(input.Email),
			Name:         input.Name,
			PasswordHash: hash,
			CreatedAt:    time.Now(),
		}

		if err := store.NewPostgresUserStore(database.DB).Insert(c.Request.Context(), newUser); err != nil {
			if err == store.ErrEmailTaken {
				c.JSON(http.StatusConflict, gin.H{"error": "Email déjà utilisé"})
				return
			}
			log.Printf("❌ Erreur insertion utilisateur: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création compte"})
			return
		}

		token, err := utils.GenerateJWT(newUser, cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
			return
		}

		log.Printf("✅ Compte créé: %s", newUser.Email)
		c.JSON(http.StatusCreated, gin.H{"token": token, "user": newUser})
	}
}

// POST /api/auth/login
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
			return
		}

		u, err := store.NewPostgresUserStore(database.DB).GetByEmail(
			c.Request.Context(), strings.ToLower(input.Email))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
			return
		}

		ok, err := utils.VerifyPassword(input.Password, u.PasswordHash)
		if err != nil || !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
			return
		}

		token, err := utils.GenerateJWT(u, cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
	}
}
