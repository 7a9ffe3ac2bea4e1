package models

import (
	"time"

	"github.com/google/uuid"
)

// QRScan is an append-only scan event. Rows are never updated.
type QRScan struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QRCodeID  uuid.UUID `gorm:"column:qr_code_id;type:uuid;not null"`
	ScannedAt time.Time `gorm:"column:scanned_at;not null"`
	IPAddress *string   `gorm:"column:ip_address;type:text"`
	UserAgent *string   `gorm:"column:user_agent;type:text"`
	Location  *string   `gorm:"column:location;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (QRScan) TableName() string { return "qr_scans" }
