package qrcodes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
	"github.com/lucasmedrano/tourmarket-backend/pkg/pagination"
)

// Repository exposes persistence helpers for QR codes and their scan events.
type Repository interface {
	Create(ctx context.Context, code *models.QRCode) error
	FindByID(ctx context.Context, codeID uuid.UUID) (*models.QRCode, error)
	SetActive(ctx context.Context, codeID uuid.UUID, active bool) (int64, error)
	RecordScan(ctx context.Context, scan *models.QRScan) error
	ListScans(ctx context.Context, params listScansParams) ([]models.QRScan, *pagination.Cursor, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a QR code repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listScansParams struct {
	CodeID uuid.UUID
	Limit  int
	Cursor *pagination.Cursor
}

func (r *repositoryImpl) Create(ctx context.Context, code *models.QRCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, codeID uuid.UUID) (*models.QRCode, error) {
	var code models.QRCode
	if err := r.db.WithContext(ctx).First(&code, "id = ?", codeID).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *repositoryImpl) SetActive(ctx context.Context, codeID uuid.UUID, active bool) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.QRCode{}).
		Where("id = ?", codeID).
		UpdateColumn("is_active", active)
	return result.RowsAffected, result.Error
}

// RecordScan bumps scan_count and appends the scan row in a single
// transaction; either both land or neither does.
func (r *repositoryImpl) RecordScan(ctx context.Context, scan *models.QRScan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.QRCode{}).
			Where("id = ?", scan.QRCodeID).
			UpdateColumn("scan_count", gorm.Expr("scan_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(scan).Error
	})
}

func (r *repositoryImpl) ListScans(ctx context.Context, params listScansParams) ([]models.QRScan, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.QRScan{}).Where("qr_code_id = ?", params.CodeID)
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var scans []models.QRScan
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&scans).Error; err != nil {
		return nil, nil, err
	}

	if len(scans) > normalized {
		next := scans[normalized]
		scans = scans[:normalized]
		return scans, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return scans, nil, nil
}
