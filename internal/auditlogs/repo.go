package auditlogs

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
	"github.com/lucasmedrano/tourmarket-backend/pkg/pagination"
)

// Repository appends and reads audit rows. There is no update or delete path.
type Repository interface {
	Create(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, params listAuditLogsParams) ([]models.AuditLog, *pagination.Cursor, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an audit log repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listAuditLogsParams struct {
	EntityType string
	EntityID   *uuid.UUID
	UserID     *uuid.UUID
	Limit      int
	Cursor     *pagination.Cursor
}

func (r *repositoryImpl) Create(ctx context.Context, log *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repositoryImpl) List(ctx context.Context, params listAuditLogsParams) ([]models.AuditLog, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.AuditLog{})
	if params.EntityType != "" {
		query = query.Where("entity_type = ?", params.EntityType)
	}
	if params.EntityID != nil {
		query = query.Where("entity_id = ?", *params.EntityID)
	}
	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var logs []models.AuditLog
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, nil, err
	}

	if len(logs) > normalized {
		next := logs[normalized]
		logs = logs[:normalized]
		return logs, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return logs, nil, nil
}
