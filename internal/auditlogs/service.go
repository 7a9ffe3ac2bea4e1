package auditlogs

import (
	"context"

	"github.com/google/uuid"

	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
	"github.com/lucasmedrano/tourmarket-backend/pkg/enums"
	pkgerrors "github.com/lucasmedrano/tourmarket-backend/pkg/errors"
	"github.com/lucasmedrano/tourmarket-backend/pkg/pagination"
)

// Recorder is the append-only slice of the audit log surface other services
// depend on.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Service defines audit log operations.
type Service interface {
	Recorder
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

type service struct {
	repo Repository
}

// Entry describes one recorded action.
type Entry struct {
	UserID     *uuid.UUID
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	OldValue   *string
	NewValue   *string
	IPAddress  *string
	UserAgent  *string
	Status     enums.AuditLogStatus
	Details    *string
}

// ListParams filters the admin audit listing.
type ListParams struct {
	EntityType string
	EntityID   *uuid.UUID
	UserID     *uuid.UUID
	Limit      int
	Cursor     string
}

// ListResult wraps returned logs and the cursor for the next page.
type ListResult struct {
	Items  []models.AuditLog `json:"items"`
	Cursor string            `json:"cursor"`
}

// NewService wires audit log dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit log repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Record(ctx context.Context, entry Entry) error {
	if entry.Action == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "action required")
	}
	if entry.EntityType == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "entity type required")
	}
	status := entry.Status
	if status == "" {
		status = enums.AuditLogStatusSuccess
	}
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid audit status")
	}

	log := models.AuditLog{
		UserID:     entry.UserID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		OldValue:   entry.OldValue,
		NewValue:   entry.NewValue,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
		Status:     status,
		Details:    entry.Details,
	}
	if err := s.repo.Create(ctx, &log); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record audit log")
	}
	return nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listAuditLogsParams{
		EntityType: params.EntityType,
		EntityID:   params.EntityID,
		UserID:     params.UserID,
		Limit:      params.Limit,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit logs")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}
