// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/coffee-miniapp/internal/config"
	"github.com/your-org/coffee-miniapp/internal/interfaces/http/handlers"
	"github.com/your-org/coffee-miniapp/internal/interfaces/http/middleware"
)

// Dependencies carries the constructed handlers into route registration.
type Dependencies struct {
	Menu    *handlers.MenuHandler
	Order   *handlers.OrderHandler
	Payment *handlers.PaymentHandler
	Webhook *handlers.WebhookHandler
	Config  *config.Config
	Log     *logrus.Logger
}

// SetupRoutes configures all API routes
func SetupRoutes(api *gin.RouterGroup, deps *Dependencies) {
	// Public catalog and order endpoints
	api.GET("/menu", deps.Menu.GetMenu)
	api.GET("/supplements", deps.Menu.GetAddOns)
	api.POST("/order", deps.Order.CreateOrder)

	// Payment flow
	paymentRoutes := api.Group("/payment")
	{
		paymentRoutes.POST("/prepare", deps.Payment.Prepare)
		paymentRoutes.POST("/create-inapp", deps.Payment.CreateInApp)
		paymentRoutes.GET("/return", deps.Payment.Return)
	}

	// Bot-only endpoints, guarded by the shared secret
	botRoutes := api.Group("/")
	botRoutes.Use(middleware.RequireBotSecret(deps.Config))
	{
		botRoutes.GET("/payment/pending/:token", deps.Payment.GetPending)
		botRoutes.POST("/order-from-payment", deps.Payment.OrderFromPayment)
		botRoutes.GET("/orders", deps.Order.ListOrders)
	}

	// POS callbacks
	api.POST("/webhook/order-status", deps.Webhook.OrderStatus)
}
