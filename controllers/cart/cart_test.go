package cartControllers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rkhasan/dhakastore-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Size{},
		&models.Color{},
		&models.Cart{},
		&models.CartItem{},
	))
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) models.Product {
	t.Helper()
	p := models.Product{SKU: "SKU-" + name, Name: name, Price: price, StockQuantity: stock, IsActive: true}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func userOwner(id string) Owner {
	return Owner{UserID: &id}
}

func TestGetOrCreateCartLazy(t *testing.T) {
	db := setupTestDB(t)

	cart, err := GetOrCreateCart(db, userOwner("user-1"))
	require.NoError(t, err)
	assert.NotZero(t, cart.CartID)

	again, err := GetOrCreateCart(db, userOwner("user-1"))
	require.NoError(t, err)
	assert.Equal(t, cart.CartID, again.CartID)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetOrCreateCartSessionOwner(t *testing.T) {
	db := setupTestDB(t)
	session := "guest_abc123"

	cart, err := GetOrCreateCart(db, Owner{SessionID: &session})
	require.NoError(t, err)
	require.NotNil(t, cart.SessionID)
	assert.Equal(t, session, *cart.SessionID)
	assert.Nil(t, cart.UserID)
}

func TestGetOrCreateCartOwnerExclusivity(t *testing.T) {
	db := setupTestDB(t)
	user := "user-1"
	session := "guest_abc123"

	_, err := GetOrCreateCart(db, Owner{})
	assert.Error(t, err)

	_, err = GetOrCreateCart(db, Owner{UserID: &user, SessionID: &session})
	assert.Error(t, err)
}

func TestAddItemMergesDuplicates(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "Cotton Panjabi", 500, 10)
	cart, err := GetOrCreateCart(db, userOwner("user-1"))
	require.NoError(t, err)

	_, err = AddItem(db, &cart, CartItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	cart, err = GetOrCreateCart(db, userOwner("user-1"))
	require.NoError(t, err)
	merged, err := AddItem(db, &cart, CartItemInput{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, merged.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "same selection must stay one row")
}

func TestAddItemDistinctSelectionsStaySeparate(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "Cotton Panjabi", 500, 10)
	sizeM := models.Size{ProductID: product.ID, Name: "M"}
	sizeL := models.Size{ProductID: product.ID, Name: "L"}
	require.NoError(t, db.Create(&sizeM).Error)
	require.NoError(t, db.Create(&sizeL).Error)

	cart, err := GetOrCreateCart(db, userOwner("user-1"))
	require.NoError(t, err)
	_, err = AddItem(db, &cart, CartItemInput{ProductID: product.ID, Quantity: 1, SizeID: &sizeM.ID})
	require.NoError(t, err)

	cart, err = GetOrCreateCart(db, userOwner("user-1"))
	require.NoError(t, err)
	_, err = AddItem(db, &cart, CartItemInput{ProductID: product.ID, Quantity: 1, SizeID: &sizeL.ID})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestAddItemSizeAndColorRequired(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "Cotton Panjabi", 500, 10)
	size := models.Size{ProductID: product.ID, Name: "M"}
	color := models.Color{ProductID: product.ID, Name: "Maroon"}
	require.NoError(t, db.Create(&size).Error)
	require.NoError(t, db.Create(&color).Error)

	cart, err := GetOrCreateCart(db, userOwner("user-1"))
	require.NoError(t, err)

	_, err = AddItem(db, &cart, CartItemInput{ProductID: product.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrSizeRequired)

	_, err = AddItem(db, &cart, CartItemInput{ProductID: product.ID, Quantity: 1, SizeID: &size.ID})
	assert.ErrorIs(t, err, ErrColorRequired)

	item, err := AddItem(db, &cart, CartItemInput{
		ProductID: product.ID, Quantity: 1, SizeID: &size.ID, ColorID: &color.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "M", item.SizeName)
	assert.Equal(t, "Maroon", item.ColorName)
}

func TestAddItemRejectsForeignSelection(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "Cotton Panjabi", 500, 10)
	other := createProduct(t, db, "Silk Saree", 2000, 10)
	require.NoError(t, db.Create(&models.Size{ProductID: product.ID, Name: "M"}).Error)
	foreign := models.Size{ProductID: other.ID, Name: "M"}
	require.NoError(t, db.Create(&foreign).Error)

	cart, err := GetOrCreateCart(db, userOwner("user-1"))
	require.NoError(t, err)

	_, err = AddItem(db, &cart, CartItemInput{ProductID: product.ID, Quantity: 1, SizeID: &foreign.ID})
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestAddItemInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "Cotton Panjabi", 500, 2)

	cart, err := GetOrCreateCart(db, userOwner("user-1"))
	require.NoError(t, err)

	_, err = AddItem(db, &cart, CartItemInput{ProductID: product.ID, Quantity: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cotton Panjabi")

	// merge that would exceed stock is rejected too
	_, err = AddItem(db, &cart, CartItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	cart, err = GetOrCreateCart(db, userOwner("user-1"))
	require.NoError(t, err)
	_, err = AddItem(db, &cart, CartItemInput{ProductID: product.ID, Quantity: 1})
	assert.Error(t, err)
}

func TestValidateSelectionOptionalWhenNoVariants(t *testing.T) {
	product := models.Product{ID: 1, Name: "Plain Lungi"}
	size, color, err := ValidateSelection(&product, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, size)
	assert.Nil(t, color)
}
