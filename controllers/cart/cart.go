package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rkhasan/dhakastore-api/models"
	"gorm.io/gorm"
)

type CartItemInput struct {
	ProductID uint  `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
	SizeID    *uint `json:"size_id"`
	ColorID   *uint `json:"color_id"`
}

var (
	// ErrSizeRequired means the product has sizes and none was chosen.
	ErrSizeRequired = errors.New("please select a size")
	// ErrColorRequired means the product has colors and none was chosen.
	ErrColorRequired = errors.New("please select a color")
	// ErrInvalidSelection means the chosen size or color belongs to another product.
	ErrInvalidSelection = errors.New("selection does not belong to this product")
)

// Owner identifies who a cart belongs to: a logged-in user or an
// anonymous session, never both.
type Owner struct {
	UserID    *string
	SessionID *string
}

// OwnerFromContext reads the identity that the auth middleware stored.
// Logged-in users win over guest sessions.
func OwnerFromContext(c *gin.Context) (Owner, bool) {
	if v, ok := c.Get("user_id"); ok {
		id := v.(string)
		return Owner{UserID: &id}, true
	}
	if v, ok := c.Get("session_id"); ok {
		id := v.(string)
		return Owner{SessionID: &id}, true
	}
	return Owner{}, false
}

// GetOrCreateCart fetches the owner's regular cart, creating it lazily on
// first use. Buy-now carts are never returned here.
func GetOrCreateCart(db *gorm.DB, owner Owner) (models.Cart, error) {
	if (owner.UserID == nil) == (owner.SessionID == nil) {
		return models.Cart{}, errors.New("cart owner must be exactly one of user or session")
	}

	q := db.Preload("Items").Where("is_buy_now = ?", false)
	if owner.UserID != nil {
		q = q.Where("user_id = ?", *owner.UserID)
	} else {
		q = q.Where("session_id = ?", *owner.SessionID)
	}

	var cart models.Cart
	err := q.First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: owner.UserID, SessionID: owner.SessionID}
		if err := db.Create(&cart).Error; err != nil {
			return models.Cart{}, err
		}
		return cart, nil
	}
	return cart, err
}

// ValidateSelection enforces the size/color requiredness rules shared by
// add-to-cart and buy-now: if the product defines sizes a size must be
// chosen (and belong to the product); same for colors.
func ValidateSelection(product *models.Product, sizeID, colorID *uint) (*models.Size, *models.Color, error) {
	var size *models.Size
	var color *models.Color

	if len(product.Sizes) > 0 {
		if sizeID == nil {
			return nil, nil, ErrSizeRequired
		}
		for i := range product.Sizes {
			if product.Sizes[i].ID == *sizeID {
				size = &product.Sizes[i]
				break
			}
		}
		if size == nil {
			return nil, nil, ErrInvalidSelection
		}
	}
	if len(product.Colors) > 0 {
		if colorID == nil {
			return nil, nil, ErrColorRequired
		}
		for i := range product.Colors {
			if product.Colors[i].ID == *colorID {
				color = &product.Colors[i]
				break
			}
		}
		if color == nil {
			return nil, nil, ErrInvalidSelection
		}
	}
	return size, color, nil
}

// AddItem merges the given (product, size, color) into the cart, summing
// quantities when the combination is already present.
func AddItem(db *gorm.DB, cart *models.Cart, input CartItemInput) (models.CartItem, error) {
	var product models.Product
	if err := db.Preload("Sizes").Preload("Colors").First(&product, input.ProductID).Error; err != nil {
		return models.CartItem{}, err
	}
	size, color, err := ValidateSelection(&product, input.SizeID, input.ColorID)
	if err != nil {
		return models.CartItem{}, err
	}

	var existing models.CartItem
	for i := range cart.Items {
		if cart.Items[i].SameSelection(product.ID, input.SizeID, input.ColorID) {
			existing = cart.Items[i]
			break
		}
	}
	if existing.ID != 0 {
		newQty := existing.Quantity + input.Quantity
		if !product.CanOrder(newQty) {
			return models.CartItem{}, errors.New("insufficient stock for " + product.Name)
		}
		existing.Quantity = newQty
		existing.AddedAt = time.Now()
		if err := db.Save(&existing).Error; err != nil {
			return models.CartItem{}, err
		}
		return existing, nil
	}

	if !product.CanOrder(input.Quantity) {
		return models.CartItem{}, errors.New("insufficient stock for " + product.Name)
	}
	item := models.CartItem{
		CartID:      cart.CartID,
		ProductID:   product.ID,
		SizeID:      input.SizeID,
		ColorID:     input.ColorID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    input.Quantity,
		AddedAt:     time.Now(),
	}
	if size != nil {
		item.SizeName = size.Name
	}
	if color != nil {
		item.ColorName = color.Name
	}
	if err := db.Create(&item).Error; err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := OwnerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		cart, err := GetOrCreateCart(db, owner)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":    cart.Items,
			"subtotal": cart.Subtotal(),
		})
	}
}

// POST /cart/add
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := OwnerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, err := GetOrCreateCart(db, owner)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		item, err := AddItem(db, &cart, input)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// POST /cart/increase/:item_id
func IncreaseCartItemQuantity(db *gorm.DB) gin.HandlerFunc {
	return adjustQuantity(db, +1)
}

// POST /cart/decrease/:item_id
func DecreaseCartItemQuantity(db *gorm.DB) gin.HandlerFunc {
	return adjustQuantity(db, -1)
}

func adjustQuantity(db *gorm.DB, delta int) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := OwnerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		cart, err := GetOrCreateCart(db, owner)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		var item models.CartItem
		if err := db.Where("cart_id = ? AND id = ?", cart.CartID, c.Param("item_id")).First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		item.Quantity += delta
		if item.Quantity <= 0 {
			if err := db.Delete(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
			return
		}

		if delta > 0 {
			var product models.Product
			if err := db.First(&product, item.ProductID).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
				return
			}
			if !product.CanOrder(item.Quantity) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient stock for " + product.Name})
				return
			}
		}

		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /cart/:item_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := OwnerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		cart, err := GetOrCreateCart(db, owner)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		result := db.Where("cart_id = ? AND id = ?", cart.CartID, c.Param("item_id")).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := OwnerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		cart, err := GetOrCreateCart(db, owner)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
