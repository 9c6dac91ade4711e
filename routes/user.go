package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/rkhasan/dhakastore-api/controllers/cart"
	productcontroller "github.com/rkhasan/dhakastore-api/controllers/product"
	userControllers "github.com/rkhasan/dhakastore-api/controllers/user"
	"github.com/rkhasan/dhakastore-api/middleware"
	"gorm.io/gorm"
)

// SetupStoreRoutes registers the public catalog endpoints.
func SetupStoreRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))
	r.GET("/categories", productcontroller.GetAllCategoriesWithProducts(db))
}

// SetupUserRoutes registers profile and cart endpoints. Both need a
// token: a user token or a guest session token.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("/", userControllers.GetUser(db))
		userGroup.PUT("/", userControllers.UpdateUser(db))
	}

	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateToken)
	{
		cartGroup.GET("/", cartControllers.GetCart(db))
		cartGroup.POST("/add", cartControllers.AddCartItem(db))
		cartGroup.POST("/increase/:item_id", cartControllers.IncreaseCartItemQuantity(db))
		cartGroup.POST("/decrease/:item_id", cartControllers.DecreaseCartItemQuantity(db))
		cartGroup.DELETE("/:item_id", cartControllers.DeleteCartItem(db))
		cartGroup.DELETE("/", cartControllers.ClearCart(db))
	}
}
