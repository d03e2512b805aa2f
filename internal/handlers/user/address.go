package user

import (
	"errors"
	"net/http"
	"time"

	"hanbloom_back_end/internal/database"
	"hanbloom_back_end/internal/models"
	"hanbloom_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type addressInput struct {
	Label      string `json:"label"`
	Recipient  string `json:"recipient" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Phone      string `json:"phone"`
	IsDefault  bool   `json:"is_default"`
}

// GET /api/addresses
func GetAddresses(c *gin.Context) {
	userID := c.GetString("user_id")

	addresses, err := store.NewPostgresAddressStore(database.DB).ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture adresses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// POST /api/addresses
func CreateAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	var input addressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	addr := &models.Address{
		ID:         uuid.New(),
		UserID:     userID,
		Label:      input.Label,
		Recipient:  input.Recipient,
		Line1:      input.Line1,
		Line2:      input.Line2,
		City:       input.City,
		State:      input.State,
		PostalCode: input.PostalCode,
		Country:    input.Country,
		Phone:      input.Phone,
		IsDefault:  input.IsDefault,
		CreatedAt:  time.Now(),
	}

	if err := store.NewPostgresAddressStore(database.DB).Insert(c.Request.Context(), addr); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création adresse"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"address": addr})
}

// PUT /api/addresses/:id
func UpdateAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID adresse invalide"})
		return
	}

	var input addressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	addr := &models.Address{
		ID:         id,
		UserID:     userID,
		Label:      input.Label,
		Recipient:  input.Recipient,
		Line1:      input.Line1,
		Line2:      input.Line2,
		City:       input.City,
		State:      input.State,
		PostalCode: input.PostalCode,
		Country:    input.Country,
		Phone:      input.Phone,
		IsDefault:  input.IsDefault,
	}

	if err := store.NewPostgresAddressStore(database.DB).Update(c.Request.Context(), addr); err != nil {
		if errors.Is(err, store.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Adresse introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour adresse"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": addr})
}

// DELETE /api/addresses/:id
func DeleteAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID adresse invalide"})
		return
	}

	if err := store.NewPostgresAddressStore(database.DB).Delete(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, store.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Adresse introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression adresse"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
