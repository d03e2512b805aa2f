package product

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"hanbloom_back_end/internal/database"
	"hanbloom_back_end/internal/models"
	"hanbloom_back_end/internal/services"
	"hanbloom_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/products — alimentation du catalogue (et de l'index de recherche)
func CreateProduct(c *gin.Context) {
	var input struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Price       float64  `json:"price" binding:"required,gt=0"`
		Stock       int      `json:"stock"`
		ImageURLs   []string `json:"image_urls"`
		Tags        []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	now := time.Now()
	p := &models.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURLs:   input.ImageURLs,
		Tags:        input.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := store.NewPostgresProductStore(database.DB).Insert(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	// Indexation recherche best-effort
	go services.IndexProduct(*p)

	c.JSON(http.StatusCreated, gin.H{"product": p})
}

// GET /api/products?category=&limit=&offset=
func ListProducts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "24"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 24
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	products, err := store.NewPostgresProductStore(database.DB).List(
		c.Request.Context(), c.Query("category"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GET /api/products/:id
func GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	p, err := store.NewPostgresProductStore(database.DB).GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": p})
}
