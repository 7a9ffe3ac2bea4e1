package regions

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lucasmedrano/tourmarket-backend/internal/auditlogs"
	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
	pkgerrors "github.com/lucasmedrano/tourmarket-backend/pkg/errors"
)

func setupRegionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	regions := `
CREATE TABLE IF NOT EXISTS regions (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT,
  image_url TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  region_id TEXT NOT NULL,
  name TEXT NOT NULL,
  price TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	tourGuides := `
CREATE TABLE IF NOT EXISTS tour_guides (
  id TEXT PRIMARY KEY,
  region_id TEXT NOT NULL,
  name TEXT NOT NULL,
  bio TEXT,
  photo_url TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(regions).Error)
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(tourGuides).Error)
	require.NoError(t, db.Exec("DELETE FROM tour_guides").Error)
	require.NoError(t, db.Exec("DELETE FROM products").Error)
	require.NoError(t, db.Exec("DELETE FROM regions").Error)
	return db
}

type captureAudit struct {
	entries []auditlogs.Entry
}

func (c *captureAudit) Record(ctx context.Context, entry auditlogs.Entry) error {
	c.entries = append(c.entries, entry)
	return nil
}

func newRegionService(t *testing.T, db *gorm.DB, audit *captureAudit) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:  NewRepository(db),
		Audit: audit,
	})
	require.NoError(t, err)
	return svc
}

func TestCreateDuplicateSlugConflicts(t *testing.T) {
	db := setupRegionsTestDB(t)
	audit := &captureAudit{}
	svc := newRegionService(t, db, audit)
	ctx := context.Background()
	actor := uuid.New()

	_, err := svc.Create(ctx, CreateParams{ActorID: actor, Name: "Lake District", Slug: "lake-district"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateParams{ActorID: actor, Name: "Lake District II", Slug: "lake-district"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Equal(t, 409, pkgerrors.MetadataFor(typed.Code()).HTTPStatus)
}

func seedRegion(t *testing.T, db *gorm.DB, name, slug string, active bool) models.Region {
	t.Helper()
	region := models.Region{
		ID:       uuid.New(),
		Name:     name,
		Slug:     slug,
		IsActive: active,
	}
	require.NoError(t, db.Create(&region).Error)
	return region
}

func TestCreateRecordsAudit(t *testing.T) {
	db := setupRegionsTestDB(t)
	audit := &captureAudit{}
	svc := newRegionService(t, db, audit)
	actor := uuid.New()

	_, err := svc.Create(context.Background(), CreateParams{
		ActorID: actor,
		Name:    "Coastal South",
		Slug:    "coastal-south",
	})
	require.NoError(t, err)

	require.Len(t, audit.entries, 1)
	entry := audit.entries[0]
	assert.Equal(t, "region.create", entry.Action)
	assert.Equal(t, "region", entry.EntityType)
	require.NotNil(t, entry.NewValue)
	assert.Equal(t, "coastal-south", *entry.NewValue)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, actor, *entry.UserID)
}

func TestCreateValidatesSlugFormat(t *testing.T) {
	db := setupRegionsTestDB(t)
	svc := newRegionService(t, db, &captureAudit{})

	_, err := svc.Create(context.Background(), CreateParams{Name: "Bad", Slug: "Not A Slug"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestGetBySlugPreloadsCollections(t *testing.T) {
	db := setupRegionsTestDB(t)
	svc := newRegionService(t, db, &captureAudit{})
	ctx := context.Background()

	region := seedRegion(t, db, "Highlands", "highlands", true)

	require.NoError(t, db.Exec(
		"INSERT INTO products (id, region_id, name, price, is_active) VALUES (?, ?, ?, ?, 1)",
		uuid.NewString(), region.ID.String(), "Day hike", "25.00",
	).Error)
	require.NoError(t, db.Exec(
		"INSERT INTO tour_guides (id, region_id, name, is_active) VALUES (?, ?, ?, 1)",
		uuid.NewString(), region.ID.String(), "Morag",
	).Error)

	loaded, err := svc.GetBySlug(ctx, "highlands")
	require.NoError(t, err)
	assert.Len(t, loaded.Products, 1)
	assert.Len(t, loaded.TourGuides, 1)
}

func TestGetBySlugNotFound(t *testing.T) {
	db := setupRegionsTestDB(t)
	svc := newRegionService(t, db, &captureAudit{})

	_, err := svc.GetBySlug(context.Background(), "nowhere")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteUnknownRegion(t *testing.T) {
	db := setupRegionsTestDB(t)
	svc := newRegionService(t, db, &captureAudit{})

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListReturnsOnlyActive(t *testing.T) {
	db := setupRegionsTestDB(t)
	svc := newRegionService(t, db, &captureAudit{})
	ctx := context.Background()

	region := seedRegion(t, db, "Visible", "visible", true)
	seedRegion(t, db, "Hidden", "hidden", false)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, region.ID, listed[0].ID)
}
