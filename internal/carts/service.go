package carts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucasmedrano/tourmarket-backend/internal/products"
	"github.com/lucasmedrano/tourmarket-backend/pkg/config"
	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
	pkgerrors "github.com/lucasmedrano/tourmarket-backend/pkg/errors"
)

// Service defines cart lifecycle operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Cart, error)
	Get(ctx context.Context, cartID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, params AddItemParams) (*models.CartItem, error)
	UpdateItemQty(ctx context.Context, cartID, itemID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error
	Delete(ctx context.Context, cartID uuid.UUID) error
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// ServiceParams wires cart dependencies.
type ServiceParams struct {
	Repo     Repository
	Products products.Repository
	Config   config.CartConfig
	Now      func() time.Time
}

type service struct {
	repo     Repository
	products products.Repository
	cfg      config.CartConfig
	now      func() time.Time
}

// CreateParams identifies the cart owner. Exactly one of UserID or GuestID
// must be set; the schema leaves both nullable so the check lives here.
type CreateParams struct {
	UserID  *uuid.UUID
	GuestID *string
}

// AddItemParams describes an item being added to a cart.
type AddItemParams struct {
	CartID    uuid.UUID
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int
}

// NewService wires cart dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "carts repository required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "products repository required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		repo:     params.Repo,
		products: params.Products,
		cfg:      params.Config,
		now:      now,
	}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.Cart, error) {
	hasUser := params.UserID != nil && *params.UserID != uuid.Nil
	hasGuest := params.GuestID != nil && *params.GuestID != ""
	if hasUser == hasGuest {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart requires exactly one owner").
			WithDetails(map[string]string{"owner": "set either userId or guestId"})
	}

	cart := models.Cart{}
	if hasUser {
		cart.UserID = params.UserID
	} else {
		cart.GuestID = params.GuestID
	}
	cart.ExpiresAt = s.now().Add(s.ttlFor(&cart))

	if err := s.repo.Create(ctx, &cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
	}
	return &cart, nil
}

func (s *service) Get(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	if cartID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id required")
	}

	cart, err := s.repo.FindByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return cart, nil
}

// AddItem snapshots the current catalog price onto the item. Later price
// changes never touch existing cart rows.
func (s *service) AddItem(ctx context.Context, params AddItemParams) (*models.CartItem, error) {
	if params.CartID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id required")
	}
	if params.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if params.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive").
			WithDetails(map[string]string{"quantity": "must be greater than 0"})
	}

	cart, err := s.Get(ctx, params.CartID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, params.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "product is not for sale").
			WithDetails(map[string]string{"product": "inactive"})
	}

	price := product.Price
	if params.VariantID != nil && *params.VariantID != uuid.Nil {
		variant, err := s.products.FindVariant(ctx, params.ProductID, *params.VariantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product variant not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product variant")
		}
		price = variant.Price
	}

	item := models.CartItem{
		CartID:    cart.ID,
		ProductID: params.ProductID,
		VariantID: params.VariantID,
		Quantity:  params.Quantity,
		Price:     price,
		AddedAt:   s.now(),
	}
	if err := s.repo.AddItem(ctx, &item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
	}

	// Activity resets the clock so a cart being filled does not fall to
	// the expiry sweep mid-checkout.
	if err := s.repo.TouchExpiry(ctx, cart.ID, s.now().Add(s.ttlFor(cart))); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh cart expiry")
	}
	return &item, nil
}

func (s *service) ttlFor(cart *models.Cart) time.Duration {
	if cart.UserID != nil && *cart.UserID != uuid.Nil {
		return s.cfg.UserTTL
	}
	return s.cfg.GuestTTL
}

func (s *service) UpdateItemQty(ctx context.Context, cartID, itemID uuid.UUID, quantity int) error {
	if cartID == uuid.Nil || itemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart and item ids required")
	}
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive").
			WithDetails(map[string]string{"quantity": "must be greater than 0"})
	}

	affected, err := s.repo.UpdateItemQty(ctx, cartID, itemID, quantity)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}

func (s *service) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	if cartID == uuid.Nil || itemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart and item ids required")
	}

	affected, err := s.repo.RemoveItem(ctx, cartID, itemID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, cartID uuid.UUID) error {
	if cartID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart id required")
	}

	affected, err := s.repo.Delete(ctx, cartID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
	}
	return nil
}

func (s *service) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	if cutoff.IsZero() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "cutoff required")
	}

	count, err := s.repo.DeleteExpired(ctx, cutoff)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete expired carts")
	}
	return count, nil
}
