package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lucasmedrano/tourmarket-backend/internal/auditlogs"
	"github.com/lucasmedrano/tourmarket-backend/internal/orders"
	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
	"github.com/lucasmedrano/tourmarket-backend/pkg/enums"
	pkgerrors "github.com/lucasmedrano/tourmarket-backend/pkg/errors"
	"github.com/lucasmedrano/tourmarket-backend/pkg/logger"
)

// Service defines payment operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Payment, error)
	Get(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error)
	Review(ctx context.Context, params ReviewParams) (*models.Payment, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type mailer interface {
	Send(to, subject, body string) error
}

// ServiceParams wires payment dependencies.
type ServiceParams struct {
	Repo   Repository
	Orders orders.Repository
	Tx     txRunner
	Audit  auditlogs.Recorder
	Mailer mailer
	Logger *logger.Logger
	Now    func() time.Time
}

type service struct {
	repo   Repository
	orders orders.Repository
	tx     txRunner
	audit  auditlogs.Recorder
	mailer mailer
	logg   *logger.Logger
	now    func() time.Time
}

// CreateParams describes an incoming payment.
type CreateParams struct {
	OrderID        uuid.UUID
	Method         enums.PaymentMethod
	Amount         decimal.Decimal
	TransactionRef *string
	ProofURL       *string
	BankName       *string
	AccountNumber  *string
}

// ReviewParams carries an admin decision on a pending payment.
type ReviewParams struct {
	PaymentID  uuid.UUID
	ReviewerID uuid.UUID
	Approve    bool
	Note       *string
}

// NewService wires payment dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payments repository required")
	}
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders repository required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	if params.Audit == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit recorder required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		repo:   params.Repo,
		orders: params.Orders,
		tx:     params.Tx,
		audit:  params.Audit,
		mailer: params.Mailer,
		logg:   params.Logger,
		now:    now,
	}, nil
}

// Create records a payment against an order. The amount must match the order
// total exactly; partial and excess payments are both rejected.
func (s *service) Create(ctx context.Context, params CreateParams) (*models.Payment, error) {
	if params.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !params.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if params.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive").
			WithDetails(map[string]string{"amount": "must be greater than 0"})
	}
	if params.Method == enums.PaymentMethodBankTransfer {
		if params.BankName == nil || *params.BankName == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "bank transfer requires bank details").
				WithDetails(map[string]string{"bankName": "is required"})
		}
	}

	payment := models.Payment{
		OrderID:        params.OrderID,
		Method:         params.Method,
		Amount:         params.Amount,
		Status:         enums.PaymentStatusPending,
		TransactionRef: params.TransactionRef,
		ProofURL:       params.ProofURL,
		BankName:       params.BankName,
		AccountNumber:  params.AccountNumber,
	}
	if params.Method == enums.PaymentMethodBankTransfer {
		payment.Status = enums.PaymentStatusUnderReview
	}

	// The order lock, the paid check, and the insert share one transaction
	// so concurrent creates for the same order cannot both pass the check.
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		order, err := s.orders.FindByIDWithTx(tx, params.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		if !params.Amount.Equal(order.TotalAmount) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "payment amount must equal order total").
				WithDetails(map[string]string{
					"amount":   params.Amount.StringFixed(2),
					"expected": order.TotalAmount.StringFixed(2),
				})
		}

		repo := s.repo.WithTx(tx)
		completed, err := repo.CountCompletedByOrder(ctx, params.OrderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing payments")
		}
		if completed > 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order already paid").
				WithDetails(map[string]string{"order": "already has a completed payment"})
		}

		if err := repo.Create(ctx, &payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *service) Get(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	if paymentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment id required")
	}

	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
	}
	return payment, nil
}

func (s *service) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	payments, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return payments, nil
}

// Review settles a pending payment one way or the other and leaves an audit
// trail of the transition.
func (s *service) Review(ctx context.Context, params ReviewParams) (*models.Payment, error) {
	if params.PaymentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment id required")
	}
	if params.ReviewerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reviewer id required")
	}

	payment, err := s.Get(ctx, params.PaymentID)
	if err != nil {
		return nil, err
	}

	switch payment.Status {
	case enums.PaymentStatusPending, enums.PaymentStatusUnderReview:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment already settled").
			WithDetails(map[string]string{"status": string(payment.Status)})
	}

	oldStatus := string(payment.Status)
	if params.Approve {
		payment.Status = enums.PaymentStatusCompleted
		paidAt := s.now()
		payment.PaidAt = &paidAt
	} else {
		payment.Status = enums.PaymentStatusFailed
	}
	payment.ReviewedBy = &params.ReviewerID
	payment.AdminNote = params.Note

	if err := s.repo.UpdateReview(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "review payment")
	}

	newStatus := string(payment.Status)
	if err := s.audit.Record(ctx, auditlogs.Entry{
		UserID:     &params.ReviewerID,
		Action:     "payment.review",
		EntityType: "payment",
		EntityID:   &payment.ID,
		OldValue:   &oldStatus,
		NewValue:   &newStatus,
		Details:    params.Note,
	}); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "audit record failed for payment review")
	}

	s.notifyReviewOutcome(ctx, payment)

	return payment, nil
}

// notifyReviewOutcome mails the order owner about the decision. Delivery is
// best effort; the review stands even when the notification fails.
func (s *service) notifyReviewOutcome(ctx context.Context, payment *models.Payment) {
	if s.mailer == nil {
		return
	}

	email, err := s.orders.FindOwnerEmail(ctx, payment.OrderID)
	if err != nil || email == "" {
		if s.logg != nil {
			s.logg.Warn(ctx, "could not resolve order owner for payment mail")
		}
		return
	}

	subject := "Your payment was approved"
	if payment.Status == enums.PaymentStatusFailed {
		subject = "Your payment was declined"
	}
	body := fmt.Sprintf("Payment %s for order %s is now %s.",
		payment.ID, payment.OrderID, payment.Status)

	if err := s.mailer.Send(email, subject, body); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "payment review mail failed")
	}
}
