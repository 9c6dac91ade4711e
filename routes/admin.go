package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/rkhasan/dhakastore-api/controllers/order"
	productcontroller "github.com/rkhasan/dhakastore-api/controllers/product"
	userControllers "github.com/rkhasan/dhakastore-api/controllers/user"
	"github.com/rkhasan/dhakastore-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-key
// middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.POST("/:id/stock", productcontroller.AdjustStock(db))
			productAdmin.DELETE("/:id", productcontroller.DeactivateProduct(db))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
		}

		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
			orderAdmin.PUT("/:order_number/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
		}
	}
}
