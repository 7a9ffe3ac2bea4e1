package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
)

// Repository exposes order lookups. Orders are assembled by the checkout
// workflow; payments only ever read them here.
type Repository interface {
	FindByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindByIDWithTx(tx *gorm.DB, orderID uuid.UUID) (*models.Order, error)
	FindOwnerEmail(ctx context.Context, orderID uuid.UUID) (string, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an orders repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) FindByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDWithTx loads an order inside the provided transaction, taking a
// row lock so concurrent payment writes for the same order serialize.
func (r *repositoryImpl) FindByIDWithTx(tx *gorm.DB, orderID uuid.UUID) (*models.Order, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var order models.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindOwnerEmail resolves the email address of the user who placed the order.
func (r *repositoryImpl) FindOwnerEmail(ctx context.Context, orderID uuid.UUID) (string, error) {
	var email string
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.email").
		Joins("JOIN orders ON orders.user_id = users.id").
		Where("orders.id = ?", orderID).
		Take(&email).Error
	return email, err
}
