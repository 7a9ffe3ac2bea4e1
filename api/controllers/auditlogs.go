package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lucasmedrano/tourmarket-backend/api/responses"
	"github.com/lucasmedrano/tourmarket-backend/api/validators"
	"github.com/lucasmedrano/tourmarket-backend/internal/auditlogs"
	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
	"github.com/lucasmedrano/tourmarket-backend/pkg/enums"
	pkgerrors "github.com/lucasmedrano/tourmarket-backend/pkg/errors"
	"github.com/lucasmedrano/tourmarket-backend/pkg/logger"
	"github.com/lucasmedrano/tourmarket-backend/pkg/pagination"
)

type auditLogResponse struct {
	ID         uuid.UUID            `json:"id"`
	UserID     *uuid.UUID           `json:"userId,omitempty"`
	Action     string               `json:"action"`
	EntityType string               `json:"entityType"`
	EntityID   *uuid.UUID           `json:"entityId,omitempty"`
	OldValue   *string              `json:"oldValue,omitempty"`
	NewValue   *string              `json:"newValue,omitempty"`
	IPAddress  *string              `json:"ipAddress,omitempty"`
	UserAgent  *string              `json:"userAgent,omitempty"`
	Status     enums.AuditLogStatus `json:"status"`
	Details    *string              `json:"details,omitempty"`
	CreatedAt  time.Time            `json:"createdAt"`
}

type auditLogListResponse struct {
	Items  []auditLogResponse `json:"items"`
	Cursor string             `json:"cursor"`
}

func newAuditLogResponse(log models.AuditLog) auditLogResponse {
	return auditLogResponse{
		ID:         log.ID,
		UserID:     log.UserID,
		Action:     log.Action,
		EntityType: log.EntityType,
		EntityID:   log.EntityID,
		OldValue:   log.OldValue,
		NewValue:   log.NewValue,
		IPAddress:  log.IPAddress,
		UserAgent:  log.UserAgent,
		Status:     log.Status,
		Details:    log.Details,
		CreatedAt:  log.CreatedAt,
	}
}

// AdminAuditLogs lists audit entries with optional entity and user filters.
func AdminAuditLogs(svc auditlogs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "audit logs service unavailable"))
			return
		}

		params := auditlogs.ListParams{
			EntityType: strings.TrimSpace(r.URL.Query().Get("entityType")),
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("entityId")); raw != "" {
			entityID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid entity id"))
				return
			}
			params.EntityID = &entityID
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("userId")); raw != "" {
			userID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
				return
			}
			params.UserID = &userID
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.Limit = limit

		if cursor := strings.TrimSpace(r.URL.Query().Get("cursor")); cursor != "" {
			params.Cursor = cursor
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]auditLogResponse, len(result.Items))
		for i, log := range result.Items {
			items[i] = newAuditLogResponse(log)
		}
		responses.WriteSuccess(w, auditLogListResponse{Items: items, Cursor: result.Cursor})
	}
}
