package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucasmedrano/tourmarket-backend/pkg/enums"
)

// Notification stores user-directed messages. IsRead only transitions
// false to true.
type Notification struct {
	ID         uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID              `gorm:"column:user_id;type:uuid;not null"`
	Title      string                 `gorm:"column:title;type:text;not null"`
	Content    string                 `gorm:"column:content;type:text;not null"`
	Type       enums.NotificationType `gorm:"column:type;type:text;not null"`
	SourceType *string                `gorm:"column:source_type;type:text"`
	SourceID   *uuid.UUID             `gorm:"column:source_id;type:uuid"`
	IsRead     bool                   `gorm:"column:is_read;not null;default:false"`
	ActionURL  *string                `gorm:"column:action_url;type:text"`
	CreatedAt  time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
