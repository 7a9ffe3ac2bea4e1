package qrcodes

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucasmedrano/tourmarket-backend/pkg/db"
	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
	pkgerrors "github.com/lucasmedrano/tourmarket-backend/pkg/errors"
	"github.com/lucasmedrano/tourmarket-backend/pkg/pagination"
)

// Service defines QR code operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.QRCode, error)
	Get(ctx context.Context, codeID uuid.UUID) (*models.QRCode, error)
	SetActive(ctx context.Context, codeID uuid.UUID, active bool) error
	RecordScan(ctx context.Context, params ScanParams) error
	ListScans(ctx context.Context, params ListScansParams) (*ListScansResult, error)
}

// ServiceParams wires QR code dependencies.
type ServiceParams struct {
	Repo Repository
	Now  func() time.Time
}

type service struct {
	repo Repository
	now  func() time.Time
}

// CreateParams describes a new QR code. ProductID is optional; at most one
// code may point at any given product.
type CreateParams struct {
	ProductID   *uuid.UUID
	Data        string
	RedirectURL *string
	ImageURL    *string
}

// ScanParams captures one scan event.
type ScanParams struct {
	CodeID    uuid.UUID
	IPAddress *string
	UserAgent *string
	Location  *string
}

// ListScansParams configures the scan listing.
type ListScansParams struct {
	CodeID uuid.UUID
	Limit  int
	Cursor string
}

// ListScansResult wraps returned scans and the cursor for the next page.
type ListScansResult struct {
	Items  []models.QRScan `json:"items"`
	Cursor string          `json:"cursor"`
}

// NewService wires QR code dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "qr code repository required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{repo: params.Repo, now: now}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.QRCode, error) {
	if params.Data == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "data required").
			WithDetails(map[string]string{"data": "is required"})
	}

	code := models.QRCode{
		ProductID:   params.ProductID,
		Data:        params.Data,
		RedirectURL: params.RedirectURL,
		ImageURL:    params.ImageURL,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, &code); err != nil {
		if db.IsUniqueViolation(err, "qr_codes_product_id_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product already has a qr code")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create qr code")
	}
	return &code, nil
}

func (s *service) Get(ctx context.Context, codeID uuid.UUID) (*models.QRCode, error) {
	if codeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qr code id required")
	}

	code, err := s.repo.FindByID(ctx, codeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "qr code not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load qr code")
	}
	return code, nil
}

func (s *service) SetActive(ctx context.Context, codeID uuid.UUID, active bool) error {
	if codeID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "qr code id required")
	}

	affected, err := s.repo.SetActive(ctx, codeID, active)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update qr code")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "qr code not found")
	}
	return nil
}

// RecordScan rejects inactive codes and otherwise appends a scan atomically
// with the counter bump.
func (s *service) RecordScan(ctx context.Context, params ScanParams) error {
	if params.CodeID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "qr code id required")
	}

	code, err := s.Get(ctx, params.CodeID)
	if err != nil {
		return err
	}
	if !code.IsActive {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "qr code is inactive").
			WithDetails(map[string]string{"code": "inactive"})
	}

	scan := models.QRScan{
		QRCodeID:  params.CodeID,
		ScannedAt: s.now(),
		IPAddress: params.IPAddress,
		UserAgent: params.UserAgent,
		Location:  params.Location,
	}
	if err := s.repo.RecordScan(ctx, &scan); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "qr code not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record scan")
	}
	return nil
}

func (s *service) ListScans(ctx context.Context, params ListScansParams) (*ListScansResult, error) {
	if params.CodeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qr code id required")
	}

	query := listScansParams{
		CodeID: params.CodeID,
		Limit:  params.Limit,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.ListScans(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list scans")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListScansResult{Items: rows, Cursor: cursor}, nil
}
