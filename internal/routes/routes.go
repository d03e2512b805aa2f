package routes

import (
	"hanbloom_back_end/internal/config"
	"hanbloom_back_end/internal/database"
	"hanbloom_back_end/internal/handlers/checkout"
	"hanbloom_back_end/internal/handlers/product"
	"hanbloom_back_end/internal/handlers/user"
	"hanbloom_back_end/internal/middleware"
	"hanbloom_back_end/internal/payment"
	"hanbloom_back_end/internal/services"
	"hanbloom_back_end/internal/store"
	"hanbloom_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *config.Config) {
	r.Use(middleware.CORS())

	orders := store.NewPostgresOrderStore(database.DB)
	notifications := store.NewPostgresNotificationStore(database.DB)
	notifier := services.NewOrderNotifier(notifications, utils.NewMailer(cfg), cfg)

	checkoutHandler := checkout.NewHandler(payment.NewStripeGateway(), orders, notifier, cfg)

	auth := middleware.AuthRequired(cfg.JWTSecret)

	api := r.Group("/api", middleware.APIRateLimit())
	{
		// Checkout — token bearer optionnel, consommé par le créateur seulement
		api.POST("/checkout/session", middleware.CheckoutRateLimit(), checkoutHandler.CreateSession)
		api.POST("/checkout/verify", checkoutHandler.Verify)

		// Comptes
		api.POST("/auth/register", user.Register(cfg))
		api.POST("/auth/login", user.Login(cfg))

		// Catalogue — lecture publique, écriture authentifiée
		api.POST("/products", auth, product.CreateProduct)
		api.GET("/products", product.ListProducts)
		api.GET("/products/search", product.SearchProducts)
		api.GET("/products/:id", product.GetProduct)
		api.GET("/media/:section", product.ListMedia(cfg))

		// Panier
		api.GET("/cart", auth, user.GetCart)
		api.POST("/cart/add", auth, user.AddToCart)
		api.PUT("/cart/update", auth, user.UpdateCartItem)
		api.DELETE("/cart/remove/:productId", auth, user.RemoveFromCart)
		api.DELETE("/cart/clear", auth, user.ClearCart)

		// Adresses
		api.GET("/addresses", auth, user.GetAddresses)
		api.POST("/addresses", auth, user.CreateAddress)
		api.PUT("/addresses/:id", auth, user.UpdateAddress)
		api.DELETE("/addresses/:id", auth, user.DeleteAddress)

		// Commandes
		api.GET("/orders", auth, user.GetMyOrders)

		// Notifications
		api.GET("/notifications", auth, user.GetNotifications)
		api.PUT("/notifications/:id/read", auth, user.MarkNotificationRead)
		api.GET("/notifications/ws", auth, user.NotificationsWebSocket)
	}
}
