package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rkhasan/dhakastore-api/models"
	"gorm.io/gorm"
)

// DeactivateProduct takes a product off the storefront without deleting
// it: existing order items keep their reference, and checkout rejects it
// through the CanOrder active check.
func DeactivateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Model(&models.Product{}).
			Where("id = ?", c.Param("id")).
			Update("is_active", false)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate product"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deactivated"})
	}
}
