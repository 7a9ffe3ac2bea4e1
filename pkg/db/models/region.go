package models

import (
	"time"

	"github.com/google/uuid"
)

// Region is a named geographic grouping that owns products and tour guides.
// The collections are read-only back-references; region deletion does not
// cascade into them.
type Region struct {
	ID          uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string      `gorm:"column:name;type:text;not null"`
	Slug        string      `gorm:"column:slug;type:text;not null;uniqueIndex:regions_slug_key"`
	Description *string     `gorm:"column:description;type:text"`
	ImageURL    *string     `gorm:"column:image_url;type:text"`
	IsActive    bool        `gorm:"column:is_active;not null;default:true"`
	Products    []Product   `gorm:"foreignKey:RegionID"`
	TourGuides  []TourGuide `gorm:"foreignKey:RegionID"`
	CreatedAt   time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}
