package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart belongs to either a registered user or an anonymous guest. The schema
// leaves both owner columns nullable; the carts service enforces that exactly
// one is set.
type Cart struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    *uuid.UUID `gorm:"column:user_id;type:uuid"`
	GuestID   *string    `gorm:"column:guest_id;type:text"`
	ExpiresAt time.Time  `gorm:"column:expires_at;not null"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
