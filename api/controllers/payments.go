package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucasmedrano/tourmarket-backend/api/responses"
	"github.com/lucasmedrano/tourmarket-backend/api/validators"
	"github.com/lucasmedrano/tourmarket-backend/internal/payments"
	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
	"github.com/lucasmedrano/tourmarket-backend/pkg/enums"
	pkgerrors "github.com/lucasmedrano/tourmarket-backend/pkg/errors"
	"github.com/lucasmedrano/tourmarket-backend/pkg/logger"
)

type createPaymentRequest struct {
	OrderID        uuid.UUID       `json:"orderId" validate:"required"`
	Method         string          `json:"method" validate:"required"`
	Amount         decimal.Decimal `json:"amount" validate:"required"`
	TransactionRef *string         `json:"transactionRef"`
	ProofURL       *string         `json:"proofUrl"`
	BankName       *string         `json:"bankName"`
	AccountNumber  *string         `json:"accountNumber"`
}

type reviewPaymentRequest struct {
	Approve bool    `json:"approve"`
	Note    *string `json:"note"`
}

type paymentResponse struct {
	ID             uuid.UUID           `json:"id"`
	OrderID        uuid.UUID           `json:"orderId"`
	Method         enums.PaymentMethod `json:"method"`
	Amount         decimal.Decimal     `json:"amount"`
	Status         enums.PaymentStatus `json:"status"`
	TransactionRef *string             `json:"transactionRef,omitempty"`
	ProofURL       *string             `json:"proofUrl,omitempty"`
	PaidAt         *time.Time          `json:"paidAt,omitempty"`
	BankName       *string             `json:"bankName,omitempty"`
	ReviewedBy     *uuid.UUID          `json:"reviewedBy,omitempty"`
	AdminNote      *string             `json:"adminNote,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
}

func newPaymentResponse(payment *models.Payment) paymentResponse {
	return paymentResponse{
		ID:             payment.ID,
		OrderID:        payment.OrderID,
		Method:         payment.Method,
		Amount:         payment.Amount,
		Status:         payment.Status,
		TransactionRef: payment.TransactionRef,
		ProofURL:       payment.ProofURL,
		PaidAt:         payment.PaidAt,
		BankName:       payment.BankName,
		ReviewedBy:     payment.ReviewedBy,
		AdminNote:      payment.AdminNote,
		CreatedAt:      payment.CreatedAt,
	}
}

// PaymentCreate submits a payment against an order.
func PaymentCreate(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		var payload createPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.Method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		payment, err := svc.Create(r.Context(), payments.CreateParams{
			OrderID:        payload.OrderID,
			Method:         method,
			Amount:         payload.Amount,
			TransactionRef: payload.TransactionRef,
			ProofURL:       payload.ProofURL,
			BankName:       payload.BankName,
			AccountNumber:  payload.AccountNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newPaymentResponse(payment))
	}
}

// PaymentFetch returns one payment.
func PaymentFetch(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		paymentID, err := uuid.Parse(chi.URLParam(r, "paymentId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment id"))
			return
		}

		payment, err := svc.Get(r.Context(), paymentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPaymentResponse(payment))
	}
}

// PaymentsByOrder lists every payment attempt for an order.
func PaymentsByOrder(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		listed, err := svc.ListByOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items := make([]paymentResponse, len(listed))
		for i := range listed {
			items[i] = newPaymentResponse(&listed[i])
		}
		responses.WriteSuccess(w, items)
	}
}

// PaymentReview applies an admin decision to a pending payment.
func PaymentReview(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		reviewerID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		paymentID, err := uuid.Parse(chi.URLParam(r, "paymentId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment id"))
			return
		}

		var payload reviewPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Review(r.Context(), payments.ReviewParams{
			PaymentID:  paymentID,
			ReviewerID: reviewerID,
			Approve:    payload.Approve,
			Note:       payload.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPaymentResponse(payment))
	}
}
