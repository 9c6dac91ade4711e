package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductCanOrder(t *testing.T) {
	cases := []struct {
		name     string
		active   bool
		stock    int
		quantity int
		want     bool
	}{
		{"active with enough stock", true, 10, 3, true},
		{"exact stock", true, 3, 3, true},
		{"insufficient stock", true, 2, 3, false},
		{"zero stock", true, 0, 1, false},
		{"inactive", false, 10, 1, false},
		{"zero quantity", true, 10, 0, false},
		{"negative quantity", true, 10, -1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{IsActive: tc.active, StockQuantity: tc.stock}
			assert.Equal(t, tc.want, p.CanOrder(tc.quantity))
		})
	}
}

func TestProductInStock(t *testing.T) {
	assert.True(t, (&Product{StockQuantity: 1}).InStock())
	assert.False(t, (&Product{StockQuantity: 0}).InStock())
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Cotton Panjabi":    "cotton-panjabi",
		"  Mixed  CASE 42 ": "mixed-case-42",
		"bengali!@#shirt":   "bengali-shirt",
		"already-slugged":   "already-slugged",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in))
	}
}

func TestProductPrimaryImage(t *testing.T) {
	p := Product{Images: []Image{
		{ID: 1, URL: "/a.jpg"},
		{ID: 2, URL: "/b.jpg", IsPrimary: true},
	}}
	img := p.PrimaryImage()
	assert.NotNil(t, img)
	assert.Equal(t, uint(2), img.ID)

	// falls back to the first image when none is primary
	p.Images[1].IsPrimary = false
	img = p.PrimaryImage()
	assert.NotNil(t, img)
	assert.Equal(t, uint(1), img.ID)

	empty := Product{}
	assert.Nil(t, empty.PrimaryImage())
}

func TestCartSubtotal(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{UnitPrice: 500, Quantity: 2},
		{UnitPrice: 250, Quantity: 1},
	}}
	assert.Equal(t, int64(1250), cart.Subtotal())
}

func TestCartItemSameSelection(t *testing.T) {
	size := uint(7)
	otherSize := uint(8)
	item := CartItem{ProductID: 1, SizeID: &size}

	assert.True(t, item.SameSelection(1, &size, nil))
	assert.False(t, item.SameSelection(1, &otherSize, nil))
	assert.False(t, item.SameSelection(1, nil, nil))
	assert.False(t, item.SameSelection(2, &size, nil))
}

func TestOrderCancellable(t *testing.T) {
	assert.True(t, (&Order{Status: OrderStatusCreated}).Cancellable())
	assert.False(t, (&Order{Status: OrderStatusFulfilled}).Cancellable())
	assert.False(t, (&Order{Status: OrderStatusCancelled}).Cancellable())
}

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{UnitPrice: 500, Quantity: 2}
	assert.Equal(t, int64(1000), item.LineTotal())
}
