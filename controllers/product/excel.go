package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rkhasan/dhakastore-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// POST /admin/products/import
// Bulk upsert from a spreadsheet with columns SKU, Name, Price, Stock,
// IsActive. Rows match existing products by SKU.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Excel file"})
			return
		}
		if len(xlFile.Sheets) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file has no sheets"})
			return
		}

		var created, updated, skipped int
		err = db.Transaction(func(tx *gorm.DB) error {
			for i, row := range xlFile.Sheets[0].Rows {
				if i == 0 || len(row.Cells) < 4 {
					continue // header or short row
				}
				sku := strings.TrimSpace(row.Cells[0].String())
				name := strings.TrimSpace(row.Cells[1].String())
				price, priceErr := strconv.ParseInt(strings.TrimSpace(row.Cells[2].String()), 10, 64)
				stock, stockErr := strconv.Atoi(strings.TrimSpace(row.Cells[3].String()))
				if sku == "" || name == "" || priceErr != nil || price <= 0 || stockErr != nil || stock < 0 {
					skipped++
					continue
				}
				isActive := true
				if len(row.Cells) > 4 {
					if b, parseErr := strconv.ParseBool(strings.TrimSpace(row.Cells[4].String())); parseErr == nil {
						isActive = b
					}
				}

				var product models.Product
				findErr := tx.Where("sku = ?", sku).First(&product).Error
				if findErr == gorm.ErrRecordNotFound {
					product = models.Product{
						SKU:           sku,
						Name:          name,
						Price:         price,
						StockQuantity: stock,
						IsActive:      isActive,
					}
					if err := tx.Create(&product).Error; err != nil {
						return err
					}
					created++
					continue
				}
				if findErr != nil {
					return findErr
				}
				if err := tx.Model(&product).Updates(map[string]interface{}{
					"name":           name,
					"price":          price,
					"stock_quantity": stock,
					"is_active":      isActive,
				}).Error; err != nil {
					return err
				}
				updated++
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"created": created,
			"updated": updated,
			"skipped": skipped,
		})
	}
}
