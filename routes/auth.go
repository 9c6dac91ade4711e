package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rkhasan/dhakastore-api/auth"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers the "/auth/*" endpoints. Login itself lives
// outside this service; guests get a session token here.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/guest", auth.CreateGuestUser(db))
	}
}
