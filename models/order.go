package models

import "time"

type OrderStatus string

const (
	// OrderStatusCreated: order placed, stock reserved, not yet shipped.
	OrderStatusCreated OrderStatus = "created"
	// OrderStatusFulfilled: handed to the courier; no longer cancellable.
	OrderStatusFulfilled OrderStatus = "fulfilled"
	// OrderStatusCancelled: cancelled before fulfilment, stock restored.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is created atomically from a cart and is immutable afterwards
// except for status transitions. OrderNumber is the public identifier;
// the numeric ID never leaves the database.
type Order struct {
	ID           uint        `gorm:"primaryKey" json:"-"`
	OrderNumber  string      `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID       *string     `gorm:"index" json:"user_id,omitempty"`
	User         *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AddressID    uint        `json:"-"`
	Address      Address     `gorm:"foreignKey:AddressID" json:"address"`
	Items        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal     int64       `json:"subtotal"`
	ShippingCost int64       `json:"shipping_cost"`
	TotalAmount  int64       `json:"total_amount"`
	Status       OrderStatus `gorm:"type:VARCHAR(20);default:'created'" json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Cancellable reports whether the order may still be cancelled.
func (o *Order) Cancellable() bool {
	return o.Status == OrderStatusCreated
}

// OrderItem snapshots one cart item at order time. UnitPrice is the
// product price when the order was placed and never changes afterwards.
type OrderItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderID     uint   `gorm:"index" json:"-"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	ProductSKU  string `json:"product_sku"`
	SizeName    string `json:"size_name,omitempty"`
	ColorName   string `json:"color_name,omitempty"`
	UnitPrice   int64  `json:"unit_price"` // poisha, fixed at order time
	Quantity    int    `json:"quantity"`
}

// LineTotal is unit price times quantity.
func (oi *OrderItem) LineTotal() int64 {
	return oi.UnitPrice * int64(oi.Quantity)
}

// Address is the recipient snapshot taken at checkout. It is owned by
// exactly one order and never edited afterwards.
type Address struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     string    `gorm:"not null" json:"phone"`
	District  string    `gorm:"not null" json:"district"`
	Address   string    `gorm:"not null" json:"address"`
	CreatedAt time.Time `json:"created_at"`
}
