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

// MembershipInput carries the fields for purchasing a membership. The
// payment fields describe the initial payment recorded alongside it.
type MembershipInput struct {
	PlanID          string
	StartDate       time.Time
	EndDate         time.Time
	PricePaid       float64
	PaymentDateTime time.Time
	PaymentMethod   models.PaymentMethod
	TransactionID   string
}

// MembershipService owns the membership ledger and its composite
// detail view.
type MembershipService struct {
	members     repository.MemberRepository
	memberships repository.MembershipRepository
	payments    repository.PaymentRepository
	plans       repository.PlanRepository
	logger      *logrus.Logger
}

// NewMembershipService creates a MembershipService with its required
// dependencies.
func NewMembershipService(
	members repository.MemberRepository,
	memberships repository.MembershipRepository,
	payments repository.PaymentRepository,
	plans repository.PlanRepository,
	logger *logrus.Logger,
) *MembershipService {
	return &MembershipService{
		members:     members,
		memberships: memberships,
		payments:    payments,
		plans:       plans,
		logger:      logger,
	}
}

// AddMembership purchases a membership for the member and records its
// initial payment in the same transaction. Both the member and the
// referenced plan must exist. The payment is a side effect and is not
// part of the returned view.
func (s *MembershipService) AddMembership(ctx context.Context, memberID string, in MembershipInput) (*models.Membership, error) {
	if !in.PaymentMethod.Valid() {
		return nil, fmt.Errorf("payment method %q: %w", in.PaymentMethod, errs.ErrInvalidArgument)
	}

	memberExists, err := s.members.Exists(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to check member %s: %w", memberID, err)
	}
	if !memberExists {
		return nil, fmt.Errorf("member %s: %w", memberID, errs.ErrNotFound)
	}

	planExists, err := s.plans.Exists(ctx, in.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to check plan %s: %w", in.PlanID, err)
	}
	if !planExists {
		return nil, fmt.Errorf("plan %s: %w", in.PlanID, errs.ErrNotFound)
	}

	now := time.Now()
	membership := &models.Membership{
		MembershipID: uuid.NewString(),
		MemberID:     memberID,
		PlanID:       in.PlanID,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		PricePaid:    in.PricePaid,
		Status:       models.MembershipStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	payment := &models.Payment{
		PaymentID:       uuid.NewString(),
		MembershipID:    membership.MembershipID,
		PricePaid:       in.PricePaid,
		PaymentDateTime: in.PaymentDateTime,
		Method:          in.PaymentMethod,
		TransactionID:   in.TransactionID,
		ReceiptURL:      "",
		CreatedAt:       now,
	}

	if err := s.memberships.CreateWithPayment(ctx, membership, payment); err != nil {
		return nil, fmt.Errorf("failed to create membership for member %s: %w", memberID, err)
	}

	s.logger.Infof("Created membership %s (plan %s) for member %s with payment %s",
		membership.MembershipID, in.PlanID, memberID, payment.PaymentID)
	return membership, nil
}

// GetMembershipDetail returns a membership together with its payment
// trail and resolved plan. A membership owned by a different member is
// reported as not found, never as someone else's record. A missing or
// unresolvable plan degrades to a placeholder view instead of failing
// the call.
func (s *MembershipService) GetMembershipDetail(ctx context.Context, memberID, membershipID string) (*models.MembershipDetail, error) {
	membership, err := s.memberships.GetByID(ctx, membershipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership %s: %w", membershipID, err)
	}
	if membership == nil {
		return nil, fmt.Errorf("membership %s: %w", membershipID, errs.ErrNotFound)
	}
	if membership.MemberID != memberID {
		s.logger.Warnf("Membership %s does not belong to member %s", membershipID, memberID)
		return nil, fmt.Errorf("membership %s for member %s: %w", membershipID, memberID, errs.ErrNotFound)
	}

	payments, err := s.payments.GetByMembershipID(ctx, membershipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments for membership %s: %w", membershipID, err)
	}
	if payments == nil {
		payments = []*models.Payment{}
	}

	return &models.MembershipDetail{
		Membership: membership,
		Payments:   payments,
		Plan:       s.resolvePlan(ctx, membership),
	}, nil
}

func (s *MembershipService) resolvePlan(ctx context.Context, membership *models.Membership) models.PlanView {
	if membership.PlanID == "" {
		return models.PlanView{Description: "No plan associated"}
	}

	plan, err := s.plans.GetByID(ctx, membership.PlanID)
	if err != nil {
		s.logger.WithError(err).Warnf("Failed to resolve plan %s for membership %s",
			membership.PlanID, membership.MembershipID)
	}
	if err != nil || plan == nil {
		return models.PlanView{
			PlanID:      membership.PlanID,
			Description: "Plan details not available",
		}
	}

	return models.PlanView{
		PlanID:         plan.PlanID,
		PlanName:       plan.PlanName,
		DurationMonths: plan.DurationMonths,
		Price:          plan.Price,
		Description:    plan.Description,
	}
}

// ListMembershipsForMember returns all memberships owned by the member.
func (s *MembershipService) ListMembershipsForMember(ctx context.Context, memberID string) ([]*models.Membership, error) {
	memberships, err := s.memberships.GetByMemberID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get memberships for member %s: %w", memberID, err)
	}
	if memberships == nil {
		memberships = []*models.Membership{}
	}
	return memberships, nil
}
