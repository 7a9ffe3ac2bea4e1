package carts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
)

// Repository exposes persistence helpers for carts and their items.
type Repository interface {
	Create(ctx context.Context, cart *models.Cart) error
	FindByID(ctx context.Context, cartID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, item *models.CartItem) error
	UpdateItemQty(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (int64, error)
	RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (int64, error)
	Delete(ctx context.Context, cartID uuid.UUID) (int64, error)
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
	TouchExpiry(ctx context.Context, cartID uuid.UUID, expiresAt time.Time) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a carts repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

// FindByID loads the cart with its items in one round trip. Callers never see
// a cart without its items.
func (r *repositoryImpl) FindByID(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("added_at ASC")
		}).
		First(&cart, "id = ?", cartID).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *repositoryImpl) AddItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repositoryImpl) UpdateItemQty(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		UpdateColumn("quantity", quantity)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// Delete removes the cart row; cart_items go with it through the FK cascade.
func (r *repositoryImpl) Delete(ctx context.Context, cartID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", cartID).
		Delete(&models.Cart{})
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&models.Cart{})
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) TouchExpiry(ctx context.Context, cartID uuid.UUID, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		UpdateColumn("expires_at", expiresAt).Error
}
