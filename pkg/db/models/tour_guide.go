package models

import (
	"time"

	"github.com/google/uuid"
)

// TourGuide is a guide listed under a region.
type TourGuide struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RegionID  uuid.UUID `gorm:"column:region_id;type:uuid;not null"`
	Name      string    `gorm:"column:name;type:text;not null"`
	Bio       *string   `gorm:"column:bio;type:text"`
	PhotoURL  *string   `gorm:"column:photo_url;type:text"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
