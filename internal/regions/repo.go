package regions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
)

// Repository exposes persistence helpers for regions.
type Repository interface {
	Create(ctx context.Context, region *models.Region) error
	Update(ctx context.Context, region *models.Region) error
	Delete(ctx context.Context, regionID uuid.UUID) (int64, error)
	FindByID(ctx context.Context, regionID uuid.UUID) (*models.Region, error)
	FindBySlug(ctx context.Context, slug string) (*models.Region, error)
	ListActive(ctx context.Context) ([]models.Region, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a regions repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, region *models.Region) error {
	return r.db.WithContext(ctx).Create(region).Error
}

func (r *repositoryImpl) Update(ctx context.Context, region *models.Region) error {
	return r.db.WithContext(ctx).
		Model(&models.Region{}).
		Where("id = ?", region.ID).
		Select("name", "slug", "description", "image_url", "is_active").
		Updates(region).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, regionID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", regionID).
		Delete(&models.Region{})
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, regionID uuid.UUID) (*models.Region, error) {
	var region models.Region
	if err := r.db.WithContext(ctx).First(&region, "id = ?", regionID).Error; err != nil {
		return nil, err
	}
	return &region, nil
}

// FindBySlug loads the region with its catalog and guides for the public
// browse page.
func (r *repositoryImpl) FindBySlug(ctx context.Context, slug string) (*models.Region, error) {
	var region models.Region
	if err := r.db.WithContext(ctx).
		Preload("Products", "is_active = ?", true).
		Preload("TourGuides", "is_active = ?", true).
		First(&region, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &region, nil
}

func (r *repositoryImpl) ListActive(ctx context.Context) ([]models.Region, error) {
	var regions []models.Region
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&regions).Error; err != nil {
		return nil, err
	}
	return regions, nil
}
