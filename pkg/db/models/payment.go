package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucasmedrano/tourmarket-backend/pkg/enums"
)

// Payment is a monetary transaction attached to an order. Bank transfers carry
// proof and bank details and go through manual admin review.
type Payment struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID           `gorm:"column:order_id;type:uuid;not null"`
	Method         enums.PaymentMethod `gorm:"column:method;type:text;not null"`
	Amount         decimal.Decimal     `gorm:"column:amount;type:numeric(10,2);not null"`
	Status         enums.PaymentStatus `gorm:"column:status;type:text;not null;default:'PENDING'"`
	TransactionRef *string             `gorm:"column:transaction_ref;type:text"`
	ProofURL       *string             `gorm:"column:proof_url;type:text"`
	PaidAt         *time.Time          `gorm:"column:paid_at"`
	BankName       *string             `gorm:"column:bank_name;type:text"`
	AccountNumber  *string             `gorm:"column:account_number;type:text"`
	ReviewedBy     *uuid.UUID          `gorm:"column:reviewed_by;type:uuid"`
	AdminNote      *string             `gorm:"column:admin_note;type:text"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
