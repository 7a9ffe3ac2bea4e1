package controllers

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lucasmedrano/tourmarket-backend/api/responses"
	"github.com/lucasmedrano/tourmarket-backend/api/validators"
	"github.com/lucasmedrano/tourmarket-backend/internal/qrcodes"
	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
	pkgerrors "github.com/lucasmedrano/tourmarket-backend/pkg/errors"
	"github.com/lucasmedrano/tourmarket-backend/pkg/logger"
	"github.com/lucasmedrano/tourmarket-backend/pkg/pagination"
)

type createQRCodeRequest struct {
	ProductID   *uuid.UUID `json:"productId"`
	Data        string     `json:"data" validate:"required"`
	RedirectURL *string    `json:"redirectUrl"`
	ImageURL    *string    `json:"imageUrl"`
}

type setQRCodeActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type scanQRCodeRequest struct {
	Location *string `json:"location"`
}

type qrCodeResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProductID   *uuid.UUID `json:"productId,omitempty"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	Data        string     `json:"data"`
	RedirectURL *string    `json:"redirectUrl,omitempty"`
	ScanCount   int        `json:"scanCount"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type qrScanResponse struct {
	ID        uuid.UUID `json:"id"`
	QRCodeID  uuid.UUID `json:"qrCodeId"`
	ScannedAt time.Time `json:"scannedAt"`
	IPAddress *string   `json:"ipAddress,omitempty"`
	UserAgent *string   `json:"userAgent,omitempty"`
	Location  *string   `json:"location,omitempty"`
}

type qrScanListResponse struct {
	Items  []qrScanResponse `json:"items"`
	Cursor string           `json:"cursor"`
}

func newQRScanListResponse(result *qrcodes.ListScansResult) qrScanListResponse {
	items := make([]qrScanResponse, len(result.Items))
	for i, scan := range result.Items {
		items[i] = qrScanResponse{
			ID:        scan.ID,
			QRCodeID:  scan.QRCodeID,
			ScannedAt: scan.ScannedAt,
			IPAddress: scan.IPAddress,
			UserAgent: scan.UserAgent,
			Location:  scan.Location,
		}
	}
	return qrScanListResponse{Items: items, Cursor: result.Cursor}
}

func newQRCodeResponse(code *models.QRCode) qrCodeResponse {
	return qrCodeResponse{
		ID:          code.ID,
		ProductID:   code.ProductID,
		ImageURL:    code.ImageURL,
		Data:        code.Data,
		RedirectURL: code.RedirectURL,
		ScanCount:   code.ScanCount,
		IsActive:    code.IsActive,
		CreatedAt:   code.CreatedAt,
	}
}

// QRCodeCreate registers a new code, optionally bound to a product.
func QRCodeCreate(svc qrcodes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "qr codes service unavailable"))
			return
		}

		var payload createQRCodeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		code, err := svc.Create(r.Context(), qrcodes.CreateParams{
			ProductID:   payload.ProductID,
			Data:        payload.Data,
			RedirectURL: payload.RedirectURL,
			ImageURL:    payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newQRCodeResponse(code))
	}
}

// QRCodeFetch returns one code with its scan counter.
func QRCodeFetch(svc qrcodes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "qr codes service unavailable"))
			return
		}

		codeID, err := uuid.Parse(chi.URLParam(r, "codeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid code id"))
			return
		}

		code, err := svc.Get(r.Context(), codeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newQRCodeResponse(code))
	}
}

// QRCodeSetActive toggles scanning on or off for a code.
func QRCodeSetActive(svc qrcodes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "qr codes service unavailable"))
			return
		}

		codeID, err := uuid.Parse(chi.URLParam(r, "codeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid code id"))
			return
		}

		var payload setQRCodeActiveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetActive(r.Context(), codeID, *payload.IsActive); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"isActive": *payload.IsActive})
	}
}

// QRCodeScan records a scan event from the public endpoint. The caller's
// address and user agent come from the request itself.
func QRCodeScan(svc qrcodes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "qr codes service unavailable"))
			return
		}

		codeID, err := uuid.Parse(chi.URLParam(r, "codeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid code id"))
			return
		}

		var payload scanQRCodeRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		params := qrcodes.ScanParams{
			CodeID:   codeID,
			Location: payload.Location,
		}
		if ip := clientIP(r); ip != "" {
			params.IPAddress = &ip
		}
		if agent := strings.TrimSpace(r.UserAgent()); agent != "" {
			params.UserAgent = &agent
		}

		if err := svc.RecordScan(r.Context(), params); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "recorded"})
	}
}

// QRCodeScans lists the scan history for a code.
func QRCodeScans(svc qrcodes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "qr codes service unavailable"))
			return
		}

		codeID, err := uuid.Parse(chi.URLParam(r, "codeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid code id"))
			return
		}

		params := qrcodes.ListScansParams{CodeID: codeID}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.Limit = limit
		if cursor := strings.TrimSpace(r.URL.Query().Get("cursor")); cursor != "" {
			params.Cursor = cursor
		}

		resp, err := svc.ListScans(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newQRScanListResponse(resp))
	}
}

func clientIP(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
