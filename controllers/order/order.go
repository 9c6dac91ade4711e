package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rkhasan/dhakastore-api/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate takes a row lock on backends that support SELECT ... FOR
// UPDATE. sqlite has no row locks; there the guarded stock update is the
// only line of defense, which is why it exists on both paths.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// generateOrderNumber builds the public order identifier:
// a timestamp for human sorting plus a UUID for uniqueness. The column's
// unique index is the actual collision guard.
func generateOrderNumber() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// CreateOrder turns a cart into a persisted order inside one transaction:
// per item it locks the product row, re-checks availability, decrements
// stock with a guarded update, and snapshots the item at the product's
// current price. The cart is emptied in the same transaction; buy-now
// carts are deleted outright. Any failure rolls the whole thing back.
//
// A stock shortfall found here (after the caller's pre-check passed)
// comes back as ItemUnavailableError with AtCommit set, so the caller
// can tell a lost race from a stale cart.
func CreateOrder(db *gorm.DB, cart *models.Cart, addr models.Address, shippingCost int64) (*models.Order, error) {
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&addr).Error; err != nil {
			return err
		}

		var subtotal int64
		orderItems := make([]models.OrderItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			var product models.Product
			if err := lockForUpdate(tx).First(&product, item.ProductID).Error; err != nil {
				return err
			}

			if !product.CanOrder(item.Quantity) {
				return &ItemUnavailableError{ProductName: product.Name, AtCommit: true}
			}

			// Guarded decrement: the stock_quantity >= ? condition keeps the
			// quantity from going negative even without row locks.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", product.ID, item.Quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &ItemUnavailableError{ProductName: product.Name, AtCommit: true}
			}

			subtotal += product.Price * int64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				ProductSKU:  product.SKU,
				SizeName:    item.SizeName,
				ColorName:   item.ColorName,
				UnitPrice:   product.Price,
				Quantity:    item.Quantity,
			})
		}

		order = models.Order{
			OrderNumber:  generateOrderNumber(),
			UserID:       cart.UserID,
			AddressID:    addr.ID,
			Address:      addr,
			Items:        orderItems,
			Subtotal:     subtotal,
			ShippingCost: shippingCost,
			TotalAmount:  subtotal + shippingCost,
			Status:       models.OrderStatusCreated,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if cart.IsBuyNow {
			if err := tx.Delete(&models.Cart{}, cart.CartID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var unavailable *ItemUnavailableError
		if errors.As(err, &unavailable) {
			logrus.WithField("product", unavailable.ProductName).
				Warn("stock conflict while placing order")
			return nil, err
		}
		logrus.WithError(err).Error("order transaction failed")
		return nil, fmt.Errorf("%w: %v", ErrOrderPersistence, err)
	}

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount,
		"items":        len(order.Items),
	}).Info("order placed")
	broadcastNewOrder(order)
	return &order, nil
}

// CancelOrder moves an order to cancelled and puts the stock back, both in
// one transaction. Orders that already left the created state are rejected
// untouched.
func CancelOrder(db *gorm.DB, orderID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := lockForUpdate(tx).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if !order.Cancellable() {
			return ErrNotCancellable
		}

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", models.OrderStatusCancelled).Error; err != nil {
			return err
		}

		var items []models.OrderItem
		if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
			return err
		}
		for _, item := range items {
			if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
				Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// -------- Handlers --------

// GET /orders/confirmation/:order_number
func ConfirmationHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.Preload("Items").Preload("Address").
			Where("order_number = ?", c.Param("order_number")).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userIDVal.(string)).
			Preload("Items").
			Preload("Address").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:order_number
func GetOrderDetailHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var order models.Order
		if err := db.
			Where("order_number = ? AND user_id = ?", c.Param("order_number"), userIDVal.(string)).
			Preload("Items").
			Preload("Address").
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// POST /orders/:order_number/cancel
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var order models.Order
		if err := db.
			Where("order_number = ? AND user_id = ?", c.Param("order_number"), userIDVal.(string)).
			First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		if err := CancelOrder(db, order.ID); err != nil {
			switch {
			case errors.Is(err, ErrNotCancellable):
				c.JSON(http.StatusConflict, gin.H{"error": "This order cannot be cancelled"})
			case errors.Is(err, ErrOrderNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order " + order.OrderNumber + " has been cancelled"})
	}
}

// -------- Admin handlers --------

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Preload("Address").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /admin/orders/:order_number/status
// Only the created -> fulfilled transition goes through here; cancellation
// has its own path because it also restores stock.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if models.OrderStatus(req.Status) != models.OrderStatusFulfilled {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
			return
		}

		res := db.Model(&models.Order{}).
			Where("order_number = ? AND status = ?", c.Param("order_number"), models.OrderStatusCreated).
			Update("status", models.OrderStatusFulfilled)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "order is not in a fulfillable state"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}
