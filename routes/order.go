package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rkhasan/dhakastore-api/config"
	orderControllers "github.com/rkhasan/dhakastore-api/controllers/order"
	"github.com/rkhasan/dhakastore-api/middleware"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers checkout and order endpoints.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	checkout := r.Group("/checkout")
	checkout.Use(middleware.ValidateToken)
	{
		checkout.POST("/", orderControllers.CheckoutHandler(db, cfg.Shipping))
		checkout.POST("/buy-now", orderControllers.BuyNowHandler(db, cfg.Shipping))
	}

	orders := r.Group("/orders")
	{
		// Order numbers are unguessable, so the confirmation page works
		// for guests without a token.
		orders.GET("/confirmation/:order_number", orderControllers.ConfirmationHandler(db))

		authed := orders.Group("")
		authed.Use(middleware.ValidateToken)
		{
			authed.GET("/", orderControllers.GetUserOrdersHandler(db))
			authed.GET("/:order_number", orderControllers.GetOrderDetailHandler(db))
			authed.POST("/:order_number/cancel", orderControllers.CancelOrderHandler(db))
		}
	}
}
