package carts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
)

func setupCartsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)

	carts := `
CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  user_id TEXT,
  guest_id TEXT,
  expires_at DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	cartItems := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  variant_id TEXT,
  quantity INTEGER NOT NULL,
  price TEXT NOT NULL,
  added_at DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  FOREIGN KEY (cart_id) REFERENCES carts(id) ON DELETE CASCADE
);`
	require.NoError(t, db.Exec(carts).Error)
	require.NoError(t, db.Exec(cartItems).Error)
	require.NoError(t, db.Exec("DELETE FROM cart_items").Error)
	require.NoError(t, db.Exec("DELETE FROM carts").Error)
	return db
}

func seedCart(t *testing.T, db *gorm.DB, expiresAt time.Time) models.Cart {
	t.Helper()
	guest := uuid.NewString()
	cart := models.Cart{
		ID:        uuid.New(),
		GuestID:   &guest,
		ExpiresAt: expiresAt,
	}
	require.NoError(t, db.Create(&cart).Error)
	return cart
}

func seedCartItem(t *testing.T, db *gorm.DB, cartID uuid.UUID) models.CartItem {
	t.Helper()
	item := models.CartItem{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: uuid.New(),
		Quantity:  2,
		Price:     decimal.NewFromFloat(19.99),
		AddedAt:   time.Now().UTC(),
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func TestDeleteCartCascadesToItems(t *testing.T) {
	db := setupCartsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	cart := seedCart(t, db, time.Now().UTC().Add(time.Hour))
	seedCartItem(t, db, cart.ID)
	seedCartItem(t, db, cart.ID)

	affected, err := repo.Delete(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var orphans int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)
}

func TestDeleteExpiredSparesLiveCarts(t *testing.T) {
	db := setupCartsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	expired := seedCart(t, db, now.Add(-time.Hour))
	seedCartItem(t, db, expired.ID)
	live := seedCart(t, db, now.Add(time.Hour))

	count, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var remaining []models.Cart
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, live.ID, remaining[0].ID)

	var orphans int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", expired.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)
}

func TestFindByIDPreloadsItems(t *testing.T) {
	db := setupCartsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	cart := seedCart(t, db, time.Now().UTC().Add(time.Hour))
	seedCartItem(t, db, cart.ID)
	seedCartItem(t, db, cart.ID)

	loaded, err := repo.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Items, 2)
}

func TestUpdateItemQtyScopedToCart(t *testing.T) {
	db := setupCartsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	cart := seedCart(t, db, time.Now().UTC().Add(time.Hour))
	item := seedCartItem(t, db, cart.ID)
	other := seedCart(t, db, time.Now().UTC().Add(time.Hour))

	affected, err := repo.UpdateItemQty(ctx, other.ID, item.ID, 5)
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.UpdateItemQty(ctx, cart.ID, item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var stored models.CartItem
	require.NoError(t, db.First(&stored, "id = ?", item.ID).Error)
	assert.Equal(t, 5, stored.Quantity)
}
