package orderControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkhasan/dhakastore-api/models"
)

func TestValidateAddress(t *testing.T) {
	complete := AddressInput{
		Name:     "Rahim Uddin",
		Email:    "rahim@example.com",
		Phone:    "01712345678",
		Address:  "House 12, Road 5",
		District: "Dhaka",
	}
	assert.NoError(t, ValidateAddress(complete))

	missing := complete
	missing.District = ""
	missing.Phone = ""
	err := ValidateAddress(missing)
	require.Error(t, err)

	var invalid *InvalidAddressError
	require.ErrorAs(t, err, &invalid)
	assert.ElementsMatch(t, []string{"phone", "district"}, invalid.Missing)
}

func TestCheckoutWorkedExample(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "SKU-A", "Cotton Panjabi", 500, 5)
	cart := createCart(t, db, "user-1", models.CartItem{
		ProductID: product.ID, ProductName: product.Name, UnitPrice: product.Price, Quantity: 2,
	})

	order, err := Checkout(db, testShipping, &cart, AddressInput{
		Name:     "Rahim Uddin",
		Email:    "rahim@example.com",
		Phone:    "01712345678",
		Address:  "House 12, Road 5",
		District: "Dhaka",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1000), order.Subtotal)
	assert.Equal(t, testShipping.DiscountedRate, order.ShippingCost)
	assert.Equal(t, int64(1000)+testShipping.DiscountedRate, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, int64(500), order.Items[0].UnitPrice)
	assert.Equal(t, 3, stockOf(t, db, product.ID))
}

func TestCheckoutStandardDistrict(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "SKU-A", "Cotton Panjabi", 500, 5)
	cart := createCart(t, db, "user-1", models.CartItem{
		ProductID: product.ID, ProductName: product.Name, UnitPrice: product.Price, Quantity: 1,
	})

	order, err := Checkout(db, testShipping, &cart, AddressInput{
		Name:     "Karim",
		Email:    "karim@example.com",
		Phone:    "01800000000",
		Address:  "College Road 3",
		District: "Chattogram",
	})
	require.NoError(t, err)
	assert.Equal(t, testShipping.StandardRate, order.ShippingCost)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	cart := createCart(t, db, "user-1")

	_, err := Checkout(db, testShipping, &cart, AddressInput{District: "Dhaka"})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutPreCheckNamesProduct(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "SKU-A", "Silk Saree", 2000, 1)
	cart := createCart(t, db, "user-1", models.CartItem{
		ProductID: product.ID, ProductName: product.Name, UnitPrice: product.Price, Quantity: 2,
	})

	_, err := Checkout(db, testShipping, &cart, AddressInput{
		Name: "Rahim", Email: "r@example.com", Phone: "017", Address: "Road 5", District: "Dhaka",
	})
	require.Error(t, err)

	var unavailable *ItemUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "Silk Saree", unavailable.ProductName)
	assert.False(t, unavailable.AtCommit, "pre-check failure is not a commit conflict")
	assert.EqualValues(t, 0, countRows(t, db, &models.Order{}))
}

func TestCheckoutInactiveProductRejected(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "SKU-A", "Cotton Panjabi", 500, 5)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("is_active", false).Error)
	cart := createCart(t, db, "user-1", models.CartItem{
		ProductID: product.ID, ProductName: product.Name, UnitPrice: product.Price, Quantity: 1,
	})

	_, err := Checkout(db, testShipping, &cart, AddressInput{
		Name: "Rahim", Email: "r@example.com", Phone: "017", Address: "Road 5", District: "Dhaka",
	})
	var unavailable *ItemUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 5, stockOf(t, db, product.ID))
}

func TestCheckoutMissingDistrictRejectedBeforePersistence(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "SKU-A", "Cotton Panjabi", 500, 5)
	cart := createCart(t, db, "user-1", models.CartItem{
		ProductID: product.ID, ProductName: product.Name, UnitPrice: product.Price, Quantity: 2,
	})

	_, err := Checkout(db, testShipping, &cart, AddressInput{
		Name:    "Rahim Uddin",
		Email:   "rahim@example.com",
		Phone:   "01712345678",
		Address: "House 12, Road 5",
	})
	require.Error(t, err)

	var invalid *InvalidAddressError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"district"}, invalid.Missing)

	assert.EqualValues(t, 0, countRows(t, db, &models.Order{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.Address{}))
	assert.Equal(t, 5, stockOf(t, db, product.ID))
	assert.EqualValues(t, 1, countRows(t, db, &models.CartItem{}))
}
