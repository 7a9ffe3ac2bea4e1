package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucasmedrano/tourmarket-backend/pkg/enums"
)

// AuditLog is an immutable record of an action against an entity, with
// before/after values. Rows are never updated or deleted.
type AuditLog struct {
	ID         uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     *uuid.UUID           `gorm:"column:user_id;type:uuid"`
	Action     string               `gorm:"column:action;type:text;not null"`
	EntityType string               `gorm:"column:entity_type;type:text;not null"`
	EntityID   *uuid.UUID           `gorm:"column:entity_id;type:uuid"`
	OldValue   *string              `gorm:"column:old_value;type:text"`
	NewValue   *string              `gorm:"column:new_value;type:text"`
	IPAddress  *string              `gorm:"column:ip_address;type:text"`
	UserAgent  *string              `gorm:"column:user_agent;type:text"`
	Status     enums.AuditLogStatus `gorm:"column:status;type:text;not null;default:'SUCCESS'"`
	Details    *string              `gorm:"column:details;type:text"`
	CreatedAt  time.Time            `gorm:"column:created_at;autoCreateTime"`
}
