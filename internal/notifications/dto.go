package notifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
	"github.com/lucasmedrano/tourmarket-backend/pkg/enums"
)

// NotificationResponse is the flat wire projection of a notification. It
// deliberately omits the owning user relationship.
type NotificationResponse struct {
	ID         uuid.UUID              `json:"id"`
	UserID     uuid.UUID              `json:"userId"`
	Title      string                 `json:"title"`
	Content    string                 `json:"content"`
	Type       enums.NotificationType `json:"type"`
	SourceType *string                `json:"sourceType,omitempty"`
	SourceID   *uuid.UUID             `json:"sourceId,omitempty"`
	IsRead     bool                   `json:"isRead"`
	ActionURL  *string                `json:"actionUrl,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
}

// ToResponse maps a stored notification onto its wire shape.
func ToResponse(n models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:         n.ID,
		UserID:     n.UserID,
		Title:      n.Title,
		Content:    n.Content,
		Type:       n.Type,
		SourceType: n.SourceType,
		SourceID:   n.SourceID,
		IsRead:     n.IsRead,
		ActionURL:  n.ActionURL,
		CreatedAt:  n.CreatedAt,
	}
}

// ToResponses maps a page of notifications.
func ToResponses(rows []models.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToResponse(row))
	}
	return out
}
