package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rkhasan/dhakastore-api/config"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public store,
// auth, user, order and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	SetupAuthRoutes(r, db)
	SetupStoreRoutes(r, db)
	SetupUserRoutes(r, db)
	SetupOrderRoutes(r, db, cfg)
	SetupAdminRoutes(r, db)
}
