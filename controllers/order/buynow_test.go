package orderControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartControllers "github.com/rkhasan/dhakastore-api/controllers/cart"
	"github.com/rkhasan/dhakastore-api/models"
)

func buyNowAddress() AddressInput {
	return AddressInput{
		Name:     "Rahim Uddin",
		Email:    "rahim@example.com",
		Phone:    "01712345678",
		Address:  "House 12, Road 5",
		District: "Dhaka",
	}
}

func TestBuyNowLeavesRegularCartAlone(t *testing.T) {
	db := setupTestDB(t)
	regular := createProduct(t, db, "SKU-A", "Cotton Panjabi", 500, 5)
	wanted := createProduct(t, db, "SKU-B", "Silk Saree", 2000, 3)

	userID := "user-1"
	regularCart := createCart(t, db, userID, models.CartItem{
		ProductID: regular.ID, ProductName: regular.Name, UnitPrice: regular.Price, Quantity: 1,
	})

	order, err := BuyNow(db, testShipping, cartControllers.Owner{UserID: &userID}, BuyNowRequest{
		ProductID: wanted.ID,
		Quantity:  2,
		Address:   buyNowAddress(),
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "SKU-B", order.Items[0].ProductSKU)
	assert.Equal(t, int64(4000), order.Subtotal)
	assert.Equal(t, 1, stockOf(t, db, wanted.ID))

	// the regular cart keeps its item and stock
	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", regularCart.CartID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 5, stockOf(t, db, regular.ID))

	// the transient buy-now cart was consumed by the order
	var buyNowCarts int64
	require.NoError(t, db.Model(&models.Cart{}).Where("is_buy_now = ?", true).Count(&buyNowCarts).Error)
	assert.EqualValues(t, 0, buyNowCarts)
}

func TestBuyNowSizeRequired(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "SKU-A", "Cotton Panjabi", 500, 5)
	require.NoError(t, db.Create(&models.Size{ProductID: product.ID, Name: "M"}).Error)

	userID := "user-1"
	_, err := BuyNow(db, testShipping, cartControllers.Owner{UserID: &userID}, BuyNowRequest{
		ProductID: product.ID,
		Quantity:  1,
		Address:   buyNowAddress(),
	})
	assert.ErrorIs(t, err, cartControllers.ErrSizeRequired)
	assert.EqualValues(t, 0, countRows(t, db, &models.Order{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.Cart{}))
}

func TestBuyNowWithSelection(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "SKU-A", "Cotton Panjabi", 500, 5)
	size := models.Size{ProductID: product.ID, Name: "L"}
	color := models.Color{ProductID: product.ID, Name: "Maroon", HexCode: "#800000"}
	require.NoError(t, db.Create(&size).Error)
	require.NoError(t, db.Create(&color).Error)

	userID := "user-1"
	order, err := BuyNow(db, testShipping, cartControllers.Owner{UserID: &userID}, BuyNowRequest{
		ProductID: product.ID,
		Quantity:  1,
		SizeID:    &size.ID,
		ColorID:   &color.ID,
		Address:   buyNowAddress(),
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "L", order.Items[0].SizeName)
	assert.Equal(t, "Maroon", order.Items[0].ColorName)
}

func TestBuyNowInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "SKU-A", "Cotton Panjabi", 500, 1)

	userID := "user-1"
	_, err := BuyNow(db, testShipping, cartControllers.Owner{UserID: &userID}, BuyNowRequest{
		ProductID: product.ID,
		Quantity:  2,
		Address:   buyNowAddress(),
	})

	var unavailable *ItemUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.False(t, unavailable.AtCommit)
	assert.Equal(t, 1, stockOf(t, db, product.ID))
	assert.EqualValues(t, 0, countRows(t, db, &models.Cart{}), "no transient cart may be left behind")
}

func TestBuyNowFailedCheckoutCleansUp(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "SKU-A", "Cotton Panjabi", 500, 5)

	userID := "user-1"
	incomplete := buyNowAddress()
	incomplete.District = ""
	_, err := BuyNow(db, testShipping, cartControllers.Owner{UserID: &userID}, BuyNowRequest{
		ProductID: product.ID,
		Quantity:  1,
		Address:   incomplete,
	})

	var invalid *InvalidAddressError
	require.ErrorAs(t, err, &invalid)
	assert.EqualValues(t, 0, countRows(t, db, &models.Cart{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.CartItem{}))
	assert.Equal(t, 5, stockOf(t, db, product.ID))
}
