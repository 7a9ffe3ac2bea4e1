package regions

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucasmedrano/tourmarket-backend/internal/auditlogs"
	"github.com/lucasmedrano/tourmarket-backend/pkg/db"
	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
	pkgerrors "github.com/lucasmedrano/tourmarket-backend/pkg/errors"
	"github.com/lucasmedrano/tourmarket-backend/pkg/logger"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Service defines region operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Region, error)
	Update(ctx context.Context, params UpdateParams) (*models.Region, error)
	Delete(ctx context.Context, actorID, regionID uuid.UUID) error
	List(ctx context.Context) ([]models.Region, error)
	GetBySlug(ctx context.Context, slug string) (*models.Region, error)
}

// ServiceParams wires region dependencies.
type ServiceParams struct {
	Repo   Repository
	Audit  auditlogs.Recorder
	Logger *logger.Logger
}

type service struct {
	repo  Repository
	audit auditlogs.Recorder
	logg  *logger.Logger
}

// CreateParams describes a new region.
type CreateParams struct {
	ActorID     uuid.UUID
	Name        string
	Slug        string
	Description *string
	ImageURL    *string
}

// UpdateParams carries region edits.
type UpdateParams struct {
	ActorID     uuid.UUID
	RegionID    uuid.UUID
	Name        string
	Slug        string
	Description *string
	ImageURL    *string
	IsActive    bool
}

// NewService wires region dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "regions repository required")
	}
	if params.Audit == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit recorder required")
	}
	return &service{repo: params.Repo, audit: params.Audit, logg: params.Logger}, nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "slug required").
			WithDetails(map[string]string{"slug": "is required"})
	}
	if !slugRe.MatchString(slug) {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid slug").
			WithDetails(map[string]string{"slug": "must be lowercase letters, digits and hyphens"})
	}
	return nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.Region, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required").
			WithDetails(map[string]string{"name": "is required"})
	}
	if err := validateSlug(params.Slug); err != nil {
		return nil, err
	}

	region := models.Region{
		Name:        strings.TrimSpace(params.Name),
		Slug:        params.Slug,
		Description: params.Description,
		ImageURL:    params.ImageURL,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, &region); err != nil {
		if db.IsUniqueViolation(err, "regions_slug_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create region")
	}

	s.recordAudit(ctx, params.ActorID, "region.create", region.ID, nil, &region.Slug)
	return &region, nil
}

func (s *service) Update(ctx context.Context, params UpdateParams) (*models.Region, error) {
	if params.RegionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "region id required")
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required").
			WithDetails(map[string]string{"name": "is required"})
	}
	if err := validateSlug(params.Slug); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, params.RegionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "region not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load region")
	}
	oldSlug := existing.Slug

	region := models.Region{
		ID:          params.RegionID,
		Name:        strings.TrimSpace(params.Name),
		Slug:        params.Slug,
		Description: params.Description,
		ImageURL:    params.ImageURL,
		IsActive:    params.IsActive,
	}
	if err := s.repo.Update(ctx, &region); err != nil {
		if db.IsUniqueViolation(err, "regions_slug_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update region")
	}

	s.recordAudit(ctx, params.ActorID, "region.update", region.ID, &oldSlug, &region.Slug)
	return &region, nil
}

func (s *service) Delete(ctx context.Context, actorID, regionID uuid.UUID) error {
	if regionID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "region id required")
	}

	affected, err := s.repo.Delete(ctx, regionID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete region")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "region not found")
	}

	s.recordAudit(ctx, actorID, "region.delete", regionID, nil, nil)
	return nil
}

func (s *service) List(ctx context.Context) ([]models.Region, error) {
	regions, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list regions")
	}
	return regions, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Region, error) {
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	region, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "region not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load region")
	}
	return region, nil
}

func (s *service) recordAudit(ctx context.Context, actorID uuid.UUID, action string, regionID uuid.UUID, oldValue, newValue *string) {
	entry := auditlogs.Entry{
		Action:     action,
		EntityType: "region",
		EntityID:   &regionID,
		OldValue:   oldValue,
		NewValue:   newValue,
	}
	if actorID != uuid.Nil {
		entry.UserID = &actorID
	}
	if err := s.audit.Record(ctx, entry); err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("audit record failed for %s", action))
	}
}
