package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rkhasan/dhakastore-api/models"
	"gorm.io/gorm"
)

type CreateProductInput struct {
	SKU              string       `json:"sku" binding:"required"`
	Name             string       `json:"name" binding:"required"`
	CategoryID       *uint        `json:"category_id"`
	ShortDescription string       `json:"short_description"`
	Description      string       `json:"description"`
	Price            int64        `json:"price" binding:"required"`
	StockQuantity    int          `json:"stock_quantity"`
	IsActive         *bool        `json:"is_active"`
	Sizes            []string     `json:"sizes"`
	Colors           []ColorInput `json:"colors"`
	Images           []ImageInput `json:"images"`
}

type ColorInput struct {
	Name    string `json:"name" binding:"required"`
	HexCode string `json:"hex_code"`
}

type ImageInput struct {
	URL       string `json:"url" binding:"required"`
	AltText   string `json:"alt_text"`
	IsPrimary bool   `json:"is_primary"`
}

// CreateProduct creates a product with its size/color variants and image
// records. Price must be positive and stock non-negative.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than zero"})
			return
		}
		if input.StockQuantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock quantity cannot be negative"})
			return
		}

		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, *input.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
		}

		product := models.Product{
			SKU:              input.SKU,
			Name:             input.Name,
			CategoryID:       input.CategoryID,
			ShortDescription: input.ShortDescription,
			Description:      input.Description,
			Price:            input.Price,
			StockQuantity:    input.StockQuantity,
			IsActive:         true,
		}
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}
		for _, name := range input.Sizes {
			product.Sizes = append(product.Sizes, models.Size{Name: name})
		}
		for _, color := range input.Colors {
			product.Colors = append(product.Colors, models.Color{Name: color.Name, HexCode: color.HexCode})
		}
		for _, img := range input.Images {
			product.Images = append(product.Images, models.Image{
				URL:       img.URL,
				AltText:   img.AltText,
				IsPrimary: img.IsPrimary,
			})
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
