package models

import "time"

// Cart belongs to exactly one owner: a registered user or an anonymous
// session, never both. Buy-now checkouts run against a separate transient
// cart so the owner's regular cart is left alone.
type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    *string    `gorm:"index" json:"user_id,omitempty"`
	SessionID *string    `gorm:"index" json:"session_id,omitempty"`
	IsBuyNow  bool       `gorm:"default:false" json:"is_buy_now"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Subtotal sums unit price times quantity over the snapshot prices.
// Checkout recomputes this from live product prices; this one is for
// display on the cart page.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}

// CartItem references one product plus an optional size/color choice.
// One row per (cart, product, size, color): adding the same combination
// again merges by summing quantities.
type CartItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CartID      uint      `gorm:"index" json:"cart_id"`
	ProductID   uint      `gorm:"not null" json:"product_id"`
	SizeID      *uint     `json:"size_id,omitempty"`
	ColorID     *uint     `json:"color_id,omitempty"`
	ProductName string    `json:"product_name"`
	SizeName    string    `json:"size_name,omitempty"`
	ColorName   string    `json:"color_name,omitempty"`
	UnitPrice   int64     `json:"unit_price"` // display snapshot, poisha
	Quantity    int       `gorm:"not null" json:"quantity"`
	AddedAt     time.Time `json:"added_at"`
}

// SameSelection reports whether other refers to the same product with the
// same size/color choice. Used by the merge-on-add policy.
func (ci *CartItem) SameSelection(productID uint, sizeID, colorID *uint) bool {
	return ci.ProductID == productID &&
		uintPtrEqual(ci.SizeID, sizeID) &&
		uintPtrEqual(ci.ColorID, colorID)
}

func uintPtrEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
