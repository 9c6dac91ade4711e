package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rkhasan/dhakastore-api/config"
	cartControllers "github.com/rkhasan/dhakastore-api/controllers/cart"
	"github.com/rkhasan/dhakastore-api/models"
	"gorm.io/gorm"
)

type BuyNowRequest struct {
	ProductID uint         `json:"product_id" binding:"required"`
	Quantity  int          `json:"quantity" binding:"required,min=1"`
	SizeID    *uint        `json:"size_id"`
	ColorID   *uint        `json:"color_id"`
	Address   AddressInput `json:"address"`
}

// BuyNow places a one-product order without touching the buyer's regular
// cart. It builds a transient single-item cart, applies the same size and
// color rules as add-to-cart, and runs the normal checkout sequence; the
// transient cart is deleted when the order commits.
func BuyNow(db *gorm.DB, shipping config.ShippingConfig, owner cartControllers.Owner, req BuyNowRequest) (*models.Order, error) {
	var product models.Product
	if err := db.Preload("Sizes").Preload("Colors").
		Where("is_active = ?", true).
		First(&product, req.ProductID).Error; err != nil {
		return nil, err
	}

	size, color, err := cartControllers.ValidateSelection(&product, req.SizeID, req.ColorID)
	if err != nil {
		return nil, err
	}
	if !product.CanOrder(req.Quantity) {
		return nil, &ItemUnavailableError{ProductName: product.Name}
	}

	cart := models.Cart{
		UserID:    owner.UserID,
		SessionID: owner.SessionID,
		IsBuyNow:  true,
	}
	if err := db.Create(&cart).Error; err != nil {
		return nil, err
	}
	item := models.CartItem{
		CartID:      cart.CartID,
		ProductID:   product.ID,
		SizeID:      req.SizeID,
		ColorID:     req.ColorID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    req.Quantity,
	}
	if size != nil {
		item.SizeName = size.Name
	}
	if color != nil {
		item.ColorName = color.Name
	}
	if err := db.Create(&item).Error; err != nil {
		return nil, err
	}
	cart.Items = []models.CartItem{item}

	order, err := Checkout(db, shipping, &cart, req.Address)
	if err != nil {
		// Checkout failed before or inside the transaction; drop the
		// transient cart so it does not pile up.
		db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{})
		db.Delete(&models.Cart{}, cart.CartID)
		return nil, err
	}
	return order, nil
}

// POST /checkout/buy-now
func BuyNowHandler(db *gorm.DB, shipping config.ShippingConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := cartControllers.OwnerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req BuyNowRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := BuyNow(db, shipping, owner, req)
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			case errors.Is(err, cartControllers.ErrSizeRequired),
				errors.Is(err, cartControllers.ErrColorRequired),
				errors.Is(err, cartControllers.ErrInvalidSelection):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				respondCheckoutError(c, err)
			}
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":      "Order " + order.OrderNumber + " placed successfully",
			"order_number": order.OrderNumber,
			"total_amount": order.TotalAmount,
		})
	}
}
