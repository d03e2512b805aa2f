package main

import (
	"log"

	"hanbloom_back_end/internal/config"
	"hanbloom_back_end/internal/database"
	"hanbloom_back_end/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	cfg := config.Load()

	// Le SDK Stripe impose sa clé globale. Une clé absente ne tue pas le
	// serveur : le catalogue reste servi, le checkout répond 503.
	stripe.Key = cfg.StripeSecretKey
	if stripe.Key == "" {
		log.Println("⚠️ STRIPE_SECRET_KEY absent — checkout désactivé")
	} else {
		log.Println("✅ Stripe initialisé")
	}

	database.ConnectDatabases(cfg)
	defer database.Close()

	if err := database.RunMigrations(cfg); err != nil {
		log.Fatalf("❌ Échec migrations: %v", err)
	}

	r := gin.Default()
	routes.RegisterRoutes(r, cfg)

	log.Println("🚀 Serveur Hanbloom lancé sur le port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Arrêt serveur: %v", err)
	}
}
