package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/letteringshop/storefront/internal/models"
	"github.com/letteringshop/storefront/internal/repo"
	"github.com/letteringshop/storefront/internal/service"
)

func newCartEnv(t *testing.T) (*service.CartService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.ProductVariant{},
		&models.CartItem{},
	))

	return &service.CartService{Repo: &repo.GormRepo{DB: db}}, db
}

func seedVariant(t *testing.T, db *gorm.DB, stock uint) models.ProductVariant {
	t.Helper()

	prod := models.Product{
		Name:         "lettering poster",
		Description:  "hand lettered print",
		Price:        decimal.NewFromInt(25),
		DeliveryDate: "2026-09-15",
	}
	require.NoError(t, db.Create(&prod).Error)

	variant := models.ProductVariant{
		ProductID: prod.ID,
		Color:     "black",
		ImageURL:  "https://cdn.example.com/poster-black.jpg",
		Stock:     stock,
	}
	require.NoError(t, db.Create(&variant).Error)
	return variant
}

func TestAddToCart_MergesDuplicateVariant(t *testing.T) {
	svc, db := newCartEnv(t)
	ctx := context.Background()
	userID := uuid.New()
	variant := seedVariant(t, db, 5)

	first := models.CartItem{UserID: userID, VariantID: variant.ID, Quantity: 1}
	require.NoError(t, svc.AddToCart(ctx, &first))

	second := models.CartItem{UserID: userID, VariantID: variant.ID, Quantity: 1}
	require.NoError(t, svc.AddToCart(ctx, &second))

	var lines []models.CartItem
	require.NoError(t, db.Where("user_id = ?", userID).Find(&lines).Error)
	require.Len(t, lines, 1)
	assert.Equal(t, uint(2), lines[0].Quantity)
	assert.Equal(t, variant.ID, lines[0].VariantID)
}

func TestAddToCart_Validation(t *testing.T) {
	svc, db := newCartEnv(t)
	ctx := context.Background()
	variant := seedVariant(t, db, 3)

	err := svc.AddToCart(ctx, &models.CartItem{UserID: uuid.New(), VariantID: uuid.Nil, Quantity: 1})
	require.ErrorIs(t, err, service.ErrValidation)

	err = svc.AddToCart(ctx, &models.CartItem{UserID: uuid.New(), VariantID: variant.ID, Quantity: 0})
	require.ErrorIs(t, err, service.ErrValidation)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateCartItem_SetsQuantity(t *testing.T) {
	svc, db := newCartEnv(t)
	ctx := context.Background()
	userID := uuid.New()
	variant := seedVariant(t, db, 10)

	line := models.CartItem{UserID: userID, VariantID: variant.ID, Quantity: 1}
	require.NoError(t, svc.AddToCart(ctx, &line))

	item, removed, err := svc.UpdateCartItem(ctx, line.ID, userID, 5)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, uint(5), item.Quantity)
}

func TestUpdateCartItem_NonPositiveQuantityRemovesLine(t *testing.T) {
	svc, db := newCartEnv(t)
	ctx := context.Background()
	userID := uuid.New()
	variant := seedVariant(t, db, 10)

	for _, quantity := range []int{0, -3} {
		line := models.CartItem{UserID: userID, VariantID: variant.ID, Quantity: 2}
		require.NoError(t, svc.AddToCart(ctx, &line))

		item, removed, err := svc.UpdateCartItem(ctx, line.ID, userID, quantity)
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Nil(t, item)

		var count int64
		require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestUpdateCartItem_OtherUsersLineNotFound(t *testing.T) {
	svc, db := newCartEnv(t)
	ctx := context.Background()
	owner := uuid.New()
	intruder := uuid.New()
	variant := seedVariant(t, db, 10)

	line := models.CartItem{UserID: owner, VariantID: variant.ID, Quantity: 2}
	require.NoError(t, svc.AddToCart(ctx, &line))

	_, _, err := svc.UpdateCartItem(ctx, line.ID, intruder, 7)
	require.ErrorIs(t, err, service.ErrNotFound)

	var kept models.CartItem
	require.NoError(t, db.First(&kept, "id = ?", line.ID).Error)
	assert.Equal(t, uint(2), kept.Quantity)
}

func TestRemoveFromCart_ScopedToOwner(t *testing.T) {
	svc, db := newCartEnv(t)
	ctx := context.Background()
	owner := uuid.New()
	intruder := uuid.New()
	variant := seedVariant(t, db, 10)

	line := models.CartItem{UserID: owner, VariantID: variant.ID, Quantity: 1}
	require.NoError(t, svc.AddToCart(ctx, &line))

	err := svc.RemoveFromCart(ctx, line.ID, intruder)
	require.ErrorIs(t, err, service.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", owner).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, svc.RemoveFromCart(ctx, line.ID, owner))
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", owner).Count(&count).Error)
	assert.Zero(t, count)
}

func TestClearCart_OnlyCallersLines(t *testing.T) {
	svc, db := newCartEnv(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()
	variant := seedVariant(t, db, 10)
	other := seedVariant(t, db, 4)

	require.NoError(t, svc.AddToCart(ctx, &models.CartItem{UserID: alice, VariantID: variant.ID, Quantity: 1}))
	require.NoError(t, svc.AddToCart(ctx, &models.CartItem{UserID: alice, VariantID: other.ID, Quantity: 2}))
	require.NoError(t, svc.AddToCart(ctx, &models.CartItem{UserID: bob, VariantID: variant.ID, Quantity: 3}))

	require.NoError(t, svc.ClearCart(ctx, alice))

	var aliceCount, bobCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", alice).Count(&aliceCount).Error)
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", bob).Count(&bobCount).Error)
	assert.Zero(t, aliceCount)
	assert.EqualValues(t, 1, bobCount)
}

func TestGetCartItems_NewestFirstWithJoins(t *testing.T) {
	svc, db := newCartEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	oldest := seedVariant(t, db, 5)
	middle := seedVariant(t, db, 5)
	newest := seedVariant(t, db, 5)

	base := time.Now().UTC().Add(-time.Hour)
	for i, v := range []models.ProductVariant{oldest, middle, newest} {
		item := models.CartItem{
			UserID:    userID,
			VariantID: v.ID,
			Quantity:  uint(i + 1),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&item).Error)
	}

	items, err := svc.GetCartItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, newest.ID, items[0].VariantID)
	assert.Equal(t, middle.ID, items[1].VariantID)
	assert.Equal(t, oldest.ID, items[2].VariantID)

	require.NotNil(t, items[0].Variant.Product)
	assert.Equal(t, "black", items[0].Variant.Color)
	assert.Equal(t, "lettering poster", items[0].Variant.Product.Name)
	assert.True(t, items[0].Variant.Product.Price.Equal(decimal.NewFromInt(25)))
}

func TestCart_AddAddUpdateZeroScenario(t *testing.T) {
	svc, db := newCartEnv(t)
	ctx := context.Background()
	userID := uuid.New()
	variant := seedVariant(t, db, 5)

	line := models.CartItem{UserID: userID, VariantID: variant.ID, Quantity: 1}
	require.NoError(t, svc.AddToCart(ctx, &line))

	items, err := svc.GetCartItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint(1), items[0].Quantity)

	again := models.CartItem{UserID: userID, VariantID: variant.ID, Quantity: 1}
	require.NoError(t, svc.AddToCart(ctx, &again))

	items, err = svc.GetCartItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint(2), items[0].Quantity)

	_, removed, err := svc.UpdateCartItem(ctx, items[0].ID, userID, 0)
	require.NoError(t, err)
	assert.True(t, removed)

	items, err = svc.GetCartItems(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
