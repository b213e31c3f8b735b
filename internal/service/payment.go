package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jatana/gymdesk/internal/errs"
	"github.com/jatana/gymdesk/internal/models"
	"github.com/jatana/gymdesk/internal/repository"
)

// PaymentInput carries the fields for recording a payment against an
// existing membership, e.g. an installment after the initial purchase.
type PaymentInput struct {
	Amount          float64
	PaymentDateTime time.Time
	Method          models.PaymentMethod
	TransactionID   string
	ReceiptURL      string
}

// PaymentService owns the append-only payment trail.
type PaymentService struct {
	memberships repository.MembershipRepository
	payments    repository.PaymentRepository
	logger      *logrus.Logger
}

// NewPaymentService creates a PaymentService with its required
// dependencies.
func NewPaymentService(
	memberships repository.MembershipRepository,
	payments repository.PaymentRepository,
	logger *logrus.Logger,
) *PaymentService {
	return &PaymentService{
		memberships: memberships,
		payments:    payments,
		logger:      logger,
	}
}

// RecordPayment appends a payment to the membership's trail. Payments
// are never updated or deleted.
func (s *PaymentService) RecordPayment(ctx context.Context, membershipID string, in PaymentInput) (*models.Payment, error) {
	if !in.Method.Valid() {
		return nil, fmt.Errorf("payment method %q: %w", in.Method, errs.ErrInvalidArgument)
	}

	membership, err := s.memberships.GetByID(ctx, membershipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership %s: %w", membershipID, err)
	}
	if membership == nil {
		return nil, fmt.Errorf("membership %s: %w", membershipID, errs.ErrNotFound)
	}

	payment := &models.Payment{
		PaymentID:       uuid.NewString(),
		MembershipID:    membershipID,
		PricePaid:       in.Amount,
		PaymentDateTime: in.PaymentDateTime,
		Method:          in.Method,
		TransactionID:   in.TransactionID,
		ReceiptURL:      in.ReceiptURL,
		CreatedAt:       time.Now(),
	}

	created, err := s.payments.Create(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment for membership %s: %w", membershipID, err)
	}

	s.logger.Infof("Recorded payment %s (%.2f) for membership %s", created.PaymentID, created.PricePaid, membershipID)
	return created, nil
}

// ListPaymentsForMembership returns the membership's payments in
// storage order.
func (s *PaymentService) ListPaymentsForMembership(ctx context.Context, membershipID string) ([]*models.Payment, error) {
	payments, err := s.payments.GetByMembershipID(ctx, membershipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments for membership %s: %w", membershipID, err)
	}
	if payments == nil {
		payments = []*models.Payment{}
	}
	return payments, nil
}
