package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rkhasan/dhakastore-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /admin/orders/export
// Streams all orders, one row per order item, as an .xlsx download.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Preload("Address").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"OrderNumber", "Status", "Name", "Phone", "District",
			"SKU", "Product", "Size", "Color", "Quantity", "UnitPrice",
			"Subtotal", "ShippingCost", "TotalAmount", "PlacedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			for _, item := range o.Items {
				row := sheet.AddRow()
				row.AddCell().SetValue(o.OrderNumber)
				row.AddCell().SetValue(string(o.Status))
				row.AddCell().SetValue(o.Address.Name)
				row.AddCell().SetValue(o.Address.Phone)
				row.AddCell().SetValue(o.Address.District)
				row.AddCell().SetValue(item.ProductSKU)
				row.AddCell().SetValue(item.ProductName)
				row.AddCell().SetValue(item.SizeName)
				row.AddCell().SetValue(item.ColorName)
				row.AddCell().SetValue(item.Quantity)
				row.AddCell().SetValue(item.UnitPrice)
				row.AddCell().SetValue(o.Subtotal)
				row.AddCell().SetValue(o.ShippingCost)
				row.AddCell().SetValue(o.TotalAmount)
				row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
			}
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
