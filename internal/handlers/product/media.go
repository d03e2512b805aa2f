package product

import (
	"net/http"

	"hanbloom_back_end/internal/config"
	"hanbloom_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// Sections de médias marketing servies au storefront
var mediaSections = map[string]bool{
	"hero":         true, // vidéos plein écran de la page d'accueil
	"carousel":     true,
	"before-after": true,
}

// GET /api/media/:section
func ListMedia(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		section := c.Param("section")
		if !mediaSections[section] {
			c.JSON(http.StatusNotFound, gin.H{"error": "Section inconnue"})
			return
		}

		assets, err := services.ListMediaAssets(c.Request.Context(), cfg.MinioBucket, section)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Médias indisponibles"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"section": section, "assets": assets, "count": len(assets)})
	}
}
