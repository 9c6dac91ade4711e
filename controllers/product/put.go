package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rkhasan/dhakastore-api/models"
	"gorm.io/gorm"
)

type UpdateProductInput struct {
	Name             *string `json:"name"`
	CategoryID       *uint   `json:"category_id"`
	ShortDescription *string `json:"short_description"`
	Description      *string `json:"description"`
	Price            *int64  `json:"price"`
	IsActive         *bool   `json:"is_active"`
}

// UpdateProduct applies a partial update. Stock is not editable here;
// AdjustStock exists for that so adjustments stay atomic.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Price != nil && *input.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than zero"})
			return
		}

		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.CategoryID != nil {
			updates["category_id"] = *input.CategoryID
		}
		if input.ShortDescription != nil {
			updates["short_description"] = *input.ShortDescription
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Price != nil {
			updates["price"] = *input.Price
		}
		if input.IsActive != nil {
			updates["is_active"] = *input.IsActive
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
			return
		}

		if err := db.Model(&product).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

type AdjustStockInput struct {
	Delta int `json:"delta" binding:"required"`
}

// AdjustStock changes stock_quantity by a signed delta with a guarded
// update so it can never go below zero, even under concurrent checkouts.
func AdjustStock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AdjustStockInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		res := db.Model(&models.Product{}).
			Where("id = ? AND stock_quantity + ? >= 0", c.Param("id"), input.Delta).
			Update("stock_quantity", gorm.Expr("stock_quantity + ?", input.Delta))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust stock"})
			return
		}
		if res.RowsAffected == 0 {
			var product models.Product
			if err := db.First(&product, c.Param("id")).Error; errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock quantity cannot go negative"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Stock adjusted"})
	}
}
