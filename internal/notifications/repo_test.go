package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
	"github.com/lucasmedrano/tourmarket-backend/pkg/enums"
)

func setupNotificationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	notifications := `
CREATE TABLE IF NOT EXISTS notifications (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  title TEXT NOT NULL,
  content TEXT NOT NULL,
  type TEXT NOT NULL,
  source_type TEXT,
  source_id TEXT,
  is_read INTEGER NOT NULL DEFAULT 0,
  action_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(notifications).Error)
	require.NoError(t, db.Exec("DELETE FROM notifications").Error)
	return db
}

func seedNotification(t *testing.T, db *gorm.DB, userID uuid.UUID, isRead bool, createdAt time.Time) models.Notification {
	t.Helper()
	n := models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     "order update",
		Content:   "your order shipped",
		Type:      enums.NotificationTypeOrderStatus,
		IsRead:    isRead,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.Create(&n).Error)
	return n
}

func TestMarkReadFlipsOnlyUnread(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	n := seedNotification(t, db, userID, false, time.Now().UTC())

	result, err := repo.MarkRead(ctx, userID, n.ID)
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.True(t, result.Updated)

	var stored models.Notification
	require.NoError(t, db.First(&stored, "id = ?", n.ID).Error)
	assert.True(t, stored.IsRead)

	// second call finds the row but changes nothing
	result, err = repo.MarkRead(ctx, userID, n.ID)
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.False(t, result.Updated)
}

func TestMarkReadScopedToOwner(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	n := seedNotification(t, db, uuid.New(), false, time.Now().UTC())

	result, err := repo.MarkRead(ctx, uuid.New(), n.ID)
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.False(t, result.Updated)
}

func TestMarkAllReadCountsRows(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	now := time.Now().UTC()
	seedNotification(t, db, userID, false, now)
	seedNotification(t, db, userID, false, now.Add(-time.Hour))
	seedNotification(t, db, userID, true, now.Add(-2*time.Hour))

	count, err := repo.MarkAllRead(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestListUnreadOnlyWithCursor(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		seedNotification(t, db, userID, i%2 == 0, base.Add(time.Duration(i)*time.Minute))
	}

	rows, next, err := repo.List(ctx, listNotificationsParams{
		UserID:     userID,
		Limit:      2,
		UnreadOnly: true,
	})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	require.Nil(t, next)
	for _, row := range rows {
		assert.False(t, row.IsRead)
	}
}

func TestDeleteReadOlderThanSparesUnread(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	old := cutoff.Add(-time.Hour)
	seedNotification(t, db, userID, true, old)
	keptUnread := seedNotification(t, db, userID, false, old)
	keptRecent := seedNotification(t, db, userID, true, time.Now().UTC())

	count, err := repo.DeleteReadOlderThan(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var remaining []models.Notification
	require.NoError(t, db.Find(&remaining).Error)
	ids := []uuid.UUID{remaining[0].ID, remaining[1].ID}
	assert.Contains(t, ids, keptUnread.ID)
	assert.Contains(t, ids, keptRecent.ID)
}
