package user

import (
	"context"
	"encoding/json"
	"net/http"

	"hanbloom_back_end/internal/database"
	"hanbloom_back_end/internal/models"
	"hanbloom_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func cartKey(userID string) string {
	return "cart:" + userID
}

// publishCartEvent prévient les clients websocket d'un changement de panier
func publishCartEvent(ctx context.Context, userID, event string) {
	database.Redis.Publish(ctx, cartKey(userID), event)
}

func loadCart(ctx context.Context, userID string) ([]models.CartLineItem, error) {
	data, err := database.Redis.Get(ctx, cartKey(userID)).Result()
	if err != nil || data == "" {
		return []models.CartLineItem{}, nil // panier vide
	}

	var cart []models.CartLineItem
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func saveCart(ctx context.Context, userID string, cart []models.CartLineItem) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return database.Redis.Set(ctx, cartKey(userID), data, 0).Err()
}

// GET /api/cart
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	cart, err := loadCart(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage panier"})
		return
	}

	total := 0.0
	for _, item := range cart {
		total += item.Subtotal()
	}

	c.JSON(http.StatusOK, gin.H{"items": cart, "total": total, "count": len(cart)})
}

// POST /api/cart/add
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx := c.Request.Context()

	// Le nom et le prix viennent toujours du catalogue, jamais du client
	product, err := store.NewPostgresProductStore(database.DB).GetByID(ctx, productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	if product.Stock < input.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Stock insuffisant",
			"product":   product.Name,
			"available": product.Stock,
			"requested": input.Quantity,
		})
		return
	}

	cart, err := loadCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage panier"})
		return
	}

	imageURL := ""
	if len(product.ImageURLs) > 0 {
		imageURL = product.ImageURLs[0]
	}

	updated := false
	for i := range cart {
		if cart[i].ProductID == input.ProductID {
			cart[i].Quantity += input.Quantity
			cart[i].UnitPrice = product.Price
			cart[i].Name = product.Name
			updated = true
			break
		}
	}
	if !updated {
		cart = append(cart, models.CartLineItem{
			ProductID: input.ProductID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  input.Quantity,
			ImageURL:  imageURL,
		})
	}

	if err := saveCart(ctx, userID, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}
	publishCartEvent(ctx, userID, "updated")

	c.JSON(http.StatusOK, gin.H{"items": cart, "count": len(cart)})
}

// PUT /api/cart/update
func UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx := c.Request.Context()
	cart, err := loadCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage panier"})
		return
	}

	next := cart[:0]
	for _, item := range cart {
		if item.ProductID == input.ProductID {
			if input.Quantity == 0 {
				continue // quantité 0 = retrait
			}
			item.Quantity = input.Quantity
		}
		next = append(next, item)
	}

	if err := saveCart(ctx, userID, next); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}
	publishCartEvent(ctx, userID, "updated")

	c.JSON(http.StatusOK, gin.H{"items": next, "count": len(next)})
}

// DELETE /api/cart/remove/:productId
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	productID := c.Param("productId")
	ctx := c.Request.Context()

	cart, err := loadCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage panier"})
		return
	}

	next := cart[:0]
	for _, item := range cart {
		if item.ProductID != productID {
			next = append(next, item)
		}
	}

	if err := saveCart(ctx, userID, next); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}
	publishCartEvent(ctx, userID, "updated")

	c.JSON(http.StatusOK, gin.H{"items": next, "count": len(next)})
}

// DELETE /api/cart/clear
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	ctx := c.Request.Context()
	if err := database.Redis.Del(ctx, cartKey(userID)).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression panier"})
		return
	}
	publishCartEvent(ctx, userID, "cleared")

	c.JSON(http.StatusOK, gin.H{"items": []models.CartLineItem{}, "count": 0})
}
