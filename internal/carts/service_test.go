package carts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lucasmedrano/tourmarket-backend/pkg/config"
	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
	pkgerrors "github.com/lucasmedrano/tourmarket-backend/pkg/errors"
)

type fakeCartsRepo struct {
	carts     map[uuid.UUID]*models.Cart
	items     []models.CartItem
	created   *models.Cart
	touched   uuid.UUID
	touchedAt time.Time
}

func newFakeCartsRepo() *fakeCartsRepo {
	return &fakeCartsRepo{carts: map[uuid.UUID]*models.Cart{}}
}


func (f *fakeCartsRepo) Create(ctx context.Context, cart *models.Cart) error {
	cart.ID = uuid.New()
	f.carts[cart.ID] = cart
	f.created = cart
	return nil
}

func (f *fakeCartsRepo) FindByID(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	cart, ok := f.carts[cartID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cart, nil
}

func (f *fakeCartsRepo) AddItem(ctx context.Context, item *models.CartItem) error {
	item.ID = uuid.New()
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeCartsRepo) UpdateItemQty(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (int64, error) {
	return 0, nil
}

func (f *fakeCartsRepo) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeCartsRepo) Delete(ctx context.Context, cartID uuid.UUID) (int64, error) {
	if _, ok := f.carts[cartID]; !ok {
		return 0, nil
	}
	delete(f.carts, cartID)
	return 1, nil
}

func (f *fakeCartsRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeCartsRepo) TouchExpiry(ctx context.Context, cartID uuid.UUID, expiresAt time.Time) error {
	f.touched = cartID
	f.touchedAt = expiresAt
	if cart, ok := f.carts[cartID]; ok {
		cart.ExpiresAt = expiresAt
	}
	return nil
}

type fakeProductsRepo struct {
	product *models.Product
	variant *models.ProductVariant
}

func (f *fakeProductsRepo) FindByID(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	if f.product == nil || f.product.ID != productID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.product, nil
}

func (f *fakeProductsRepo) FindVariant(ctx context.Context, productID, variantID uuid.UUID) (*models.ProductVariant, error) {
	if f.variant == nil || f.variant.ID != variantID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.variant, nil
}

func cartTestConfig() config.CartConfig {
	return config.CartConfig{
		GuestTTL: 168 * time.Hour,
		UserTTL:  720 * time.Hour,
	}
}

func newCartService(t *testing.T, repo Repository, catalog *fakeProductsRepo, now time.Time) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:     repo,
		Products: catalog,
		Config:   cartTestConfig(),
		Now:      func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateRequiresExactlyOneOwner(t *testing.T) {
	now := time.Now().UTC()
	svc := newCartService(t, newFakeCartsRepo(), &fakeProductsRepo{}, now)

	_, err := svc.Create(context.Background(), CreateParams{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing owner, got %v", err)
	}

	userID := uuid.New()
	guestID := "guest-1"
	_, err = svc.Create(context.Background(), CreateParams{UserID: &userID, GuestID: &guestID})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for both owners, got %v", err)
	}
}

func TestCreateAppliesOwnerTTL(t *testing.T) {
	now := time.Now().UTC()
	repo := newFakeCartsRepo()
	svc := newCartService(t, repo, &fakeProductsRepo{}, now)

	guestID := "guest-1"
	cart, err := svc.Create(context.Background(), CreateParams{GuestID: &guestID})
	if err != nil {
		t.Fatalf("create guest cart: %v", err)
	}
	if got := cart.ExpiresAt; !got.Equal(now.Add(168 * time.Hour)) {
		t.Fatalf("unexpected guest expiry %v", got)
	}
	if cart.UserID != nil {
		t.Fatal("guest cart must not carry a user id")
	}

	userID := uuid.New()
	cart, err = svc.Create(context.Background(), CreateParams{UserID: &userID})
	if err != nil {
		t.Fatalf("create user cart: %v", err)
	}
	if got := cart.ExpiresAt; !got.Equal(now.Add(720 * time.Hour)) {
		t.Fatalf("unexpected user expiry %v", got)
	}
}

func TestAddItemSnapshotsProductPrice(t *testing.T) {
	now := time.Now().UTC()
	repo := newFakeCartsRepo()
	product := &models.Product{
		ID:       uuid.New(),
		Price:    decimal.NewFromFloat(42.50),
		IsActive: true,
	}
	svc := newCartService(t, repo, &fakeProductsRepo{product: product}, now)

	guestID := "guest-1"
	cart, err := svc.Create(context.Background(), CreateParams{GuestID: &guestID})
	if err != nil {
		t.Fatalf("create cart: %v", err)
	}

	item, err := svc.AddItem(context.Background(), AddItemParams{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  3,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if !item.Price.Equal(product.Price) {
		t.Fatalf("expected snapshot price %s, got %s", product.Price, item.Price)
	}
	if !item.AddedAt.Equal(now) {
		t.Fatalf("unexpected added_at %v", item.AddedAt)
	}
}

func TestAddItemRefreshesCartExpiry(t *testing.T) {
	start := time.Now().UTC()
	now := start
	repo := newFakeCartsRepo()
	product := &models.Product{
		ID:       uuid.New(),
		Price:    decimal.NewFromFloat(10.00),
		IsActive: true,
	}
	svc, err := NewService(ServiceParams{
		Repo:     repo,
		Products: &fakeProductsRepo{product: product},
		Config:   cartTestConfig(),
		Now:      func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	guestID := "guest-1"
	cart, err := svc.Create(context.Background(), CreateParams{GuestID: &guestID})
	if err != nil {
		t.Fatalf("create cart: %v", err)
	}

	now = start.Add(24 * time.Hour)
	if _, err := svc.AddItem(context.Background(), AddItemParams{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  1,
	}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	if repo.touched != cart.ID {
		t.Fatalf("expected expiry refresh for cart %s, touched %s", cart.ID, repo.touched)
	}
	if want := now.Add(168 * time.Hour); !repo.touchedAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, repo.touchedAt)
	}
	if !cart.ExpiresAt.After(start.Add(168 * time.Hour)) {
		t.Fatal("expiry did not move past the original deadline")
	}
}

func TestAddItemPrefersVariantPrice(t *testing.T) {
	now := time.Now().UTC()
	repo := newFakeCartsRepo()
	product := &models.Product{
		ID:       uuid.New(),
		Price:    decimal.NewFromFloat(42.50),
		IsActive: true,
	}
	variant := &models.ProductVariant{
		ID:        uuid.New(),
		ProductID: product.ID,
		Price:     decimal.NewFromFloat(55.00),
	}
	svc := newCartService(t, repo, &fakeProductsRepo{product: product, variant: variant}, now)

	guestID := "guest-1"
	cart, err := svc.Create(context.Background(), CreateParams{GuestID: &guestID})
	if err != nil {
		t.Fatalf("create cart: %v", err)
	}

	item, err := svc.AddItem(context.Background(), AddItemParams{
		CartID:    cart.ID,
		ProductID: product.ID,
		VariantID: &variant.ID,
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if !item.Price.Equal(variant.Price) {
		t.Fatalf("expected variant price %s, got %s", variant.Price, item.Price)
	}
}

func TestAddItemRejectsInactiveProduct(t *testing.T) {
	now := time.Now().UTC()
	repo := newFakeCartsRepo()
	product := &models.Product{
		ID:       uuid.New(),
		Price:    decimal.NewFromFloat(10.00),
		IsActive: false,
	}
	svc := newCartService(t, repo, &fakeProductsRepo{product: product}, now)

	guestID := "guest-1"
	cart, err := svc.Create(context.Background(), CreateParams{GuestID: &guestID})
	if err != nil {
		t.Fatalf("create cart: %v", err)
	}

	_, err = svc.AddItem(context.Background(), AddItemParams{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  1,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestGetMapsMissingCartToNotFound(t *testing.T) {
	svc := newCartService(t, newFakeCartsRepo(), &fakeProductsRepo{}, time.Now().UTC())

	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
