package productcontroller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rkhasan/dhakastore-api/models"
	"gorm.io/gorm"
)

// GetProductByID returns a single product with its category, images,
// sizes and colors. The :id param takes a numeric id or a slug.
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idParam := c.Param("id")
		if idParam == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		query := db.Preload("Category").Preload("Images").Preload("Sizes").Preload("Colors")
		var product models.Product
		var err error
		if id, convErr := strconv.Atoi(idParam); convErr == nil {
			err = query.First(&product, id).Error
		} else {
			err = query.Where("slug = ?", idParam).First(&product).Error
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GetProducts lists active products with optional search, category and
// price-range filters plus sorting.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		categoryID := c.Query("category_id")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")
		sortBy := c.DefaultQuery("sort_by", "created_at")
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		query := db.Model(&models.Product{}).
			Preload("Category").Preload("Images").Preload("Sizes").Preload("Colors").
			Where("is_active = ?", true)

		if search != "" {
			likePattern := "%" + search + "%"
			query = query.Where(
				"name LIKE ? OR short_description LIKE ? OR description LIKE ?",
				likePattern, likePattern, likePattern,
			)
		}
		if minPriceStr != "" {
			mp, err := strconv.ParseInt(minPriceStr, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
			query = query.Where("price >= ?", mp)
		}
		if maxPriceStr != "" {
			mp, err := strconv.ParseInt(maxPriceStr, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
			query = query.Where("price <= ?", mp)
		}
		if categoryID != "" {
			cid, err := strconv.ParseUint(categoryID, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			query = query.Where("category_id = ?", cid)
		}

		switch sortBy {
		case "price", "name", "created_at":
		default:
			sortBy = "created_at"
		}

		var products []models.Product
		if err := query.Order(sortBy + " " + sortOrder).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
