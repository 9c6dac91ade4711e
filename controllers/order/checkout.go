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

type AddressInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	District string `json:"district"`
}

// ValidateAddress checks that every required field is present and reports
// all missing ones at once.
func ValidateAddress(input AddressInput) error {
	var missing []string
	if input.Name == "" {
		missing = append(missing, "name")
	}
	if input.Email == "" {
		missing = append(missing, "email")
	}
	if input.Phone == "" {
		missing = append(missing, "phone")
	}
	if input.Address == "" {
		missing = append(missing, "address")
	}
	if input.District == "" {
		missing = append(missing, "district")
	}
	if len(missing) > 0 {
		return &InvalidAddressError{Missing: missing}
	}
	return nil
}

// Checkout runs the full placement sequence against a cart: empty-cart
// guard, per-item availability pre-check (fail fast, first offender named),
// address validation, shipping lookup, then the order transaction. Nothing
// is persisted before CreateOrder runs.
func Checkout(db *gorm.DB, shipping config.ShippingConfig, cart *models.Cart, input AddressInput) (*models.Order, error) {
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	for _, item := range cart.Items {
		var product models.Product
		if err := db.First(&product, item.ProductID).Error; err != nil {
			return nil, err
		}
		if !product.CanOrder(item.Quantity) {
			return nil, &ItemUnavailableError{ProductName: product.Name}
		}
	}

	if err := ValidateAddress(input); err != nil {
		return nil, err
	}

	addr := models.Address{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		District: input.District,
		Address:  input.Address,
	}
	return CreateOrder(db, cart, addr, ShippingCost(shipping, input.District))
}

// POST /checkout
func CheckoutHandler(db *gorm.DB, shipping config.ShippingConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := cartControllers.OwnerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, err := cartControllers.GetOrCreateCart(db, owner)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		order, err := Checkout(db, shipping, &cart, input)
		if err != nil {
			respondCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":      "Order " + order.OrderNumber + " placed successfully",
			"order_number": order.OrderNumber,
			"total_amount": order.TotalAmount,
		})
	}
}

// respondCheckoutError maps workflow errors to user-facing responses. The
// cart is always left intact on failure, so every one of these is
// retryable from the client's side.
func respondCheckoutError(c *gin.Context, err error) {
	var unavailable *ItemUnavailableError
	var badAddr *InvalidAddressError
	switch {
	case errors.Is(err, ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
	case errors.As(err, &badAddr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all required fields", "missing": badAddr.Missing})
	case errors.As(err, &unavailable):
		status := http.StatusBadRequest
		if unavailable.AtCommit {
			// Race lost after the pre-check: the client should refresh the
			// cart page before retrying.
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": "Sorry, " + unavailable.Error() + "."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error placing order. Please try again."})
	}
}
