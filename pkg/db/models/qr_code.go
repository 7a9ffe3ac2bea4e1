package models

import (
	"time"

	"github.com/google/uuid"
)

// QRCode is a scannable code, optionally bound one-to-one to a product.
// ScanCount only ever grows; every increment appends a QRScan row.
type QRCode struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID   *uuid.UUID `gorm:"column:product_id;type:uuid;uniqueIndex:qr_codes_product_id_key"`
	ImageURL    *string    `gorm:"column:image_url;type:text"`
	Data        string     `gorm:"column:data;type:text;not null"`
	RedirectURL *string    `gorm:"column:redirect_url;type:text"`
	ScanCount   int        `gorm:"column:scan_count;not null;default:0"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true"`
	Scans       []QRScan   `gorm:"foreignKey:QRCodeID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (QRCode) TableName() string { return "qr_codes" }
