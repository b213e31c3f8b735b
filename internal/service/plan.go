package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jatana/gymdesk/internal/errs"
	"github.com/jatana/gymdesk/internal/models"
	"github.com/jatana/gymdesk/internal/repository"
)

// PlanInput carries the fields for creating or updating a plan. The
// plan name doubles as the plan id, so it addresses the plan on update.
type PlanInput struct {
	PlanName       string
	DurationMonths int
	Price          float64
	Description    string
}

// PlanService owns the plan catalog.
type PlanService struct {
	plans  repository.PlanRepository
	logger *logrus.Logger
}

// NewPlanService creates a PlanService with its required dependencies.
func NewPlanService(plans repository.PlanRepository, logger *logrus.Logger) *PlanService {
	return &PlanService{plans: plans, logger: logger}
}

// CreatePlan creates a plan whose id is derived from its name. Creating
// a plan with an existing name fails, it never overwrites.
func (s *PlanService) CreatePlan(ctx context.Context, in PlanInput) (*models.Plan, error) {
	planID := in.PlanName

	exists, err := s.plans.Exists(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to check plan %s: %w", planID, err)
	}
	if exists {
		return nil, fmt.Errorf("plan %s: %w", planID, errs.ErrAlreadyExists)
	}

	now := time.Now()
	plan := &models.Plan{
		PlanID:         planID,
		PlanName:       in.PlanName,
		DurationMonths: in.DurationMonths,
		Price:          in.Price,
		Description:    in.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.plans.Create(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan %s: %w", planID, err)
	}

	s.logger.Infof("Created plan %s (%d months, %.2f)", created.PlanID, created.DurationMonths, created.Price)
	return created, nil
}

// GetPlan returns the plan with the given id.
func (s *PlanService) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan %s: %w", planID, err)
	}
	if plan == nil {
		return nil, fmt.Errorf("plan %s: %w", planID, errs.ErrNotFound)
	}
	return plan, nil
}

// ListPlans returns all plans.
func (s *PlanService) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

// UpdatePlan mutates a plan's duration, price and description. The name
// and id stay fixed after creation.
func (s *PlanService) UpdatePlan(ctx context.Context, in PlanInput) (*models.Plan, error) {
	planID := in.PlanName

	plan := &models.Plan{
		PlanID:         planID,
		DurationMonths: in.DurationMonths,
		Price:          in.Price,
		Description:    in.Description,
	}
	updated, err := s.plans.Update(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to update plan %s: %w", planID, err)
	}
	if updated == nil {
		return nil, fmt.Errorf("plan %s: %w", planID, errs.ErrNotFound)
	}

	s.logger.Infof("Updated plan %s", planID)
	return updated, nil
}

// DeletePlan removes a plan unconditionally. Memberships referencing it
// keep their plan id and render a placeholder plan view afterwards.
func (s *PlanService) DeletePlan(ctx context.Context, planID string) error {
	if err := s.plans.Delete(ctx, planID); err != nil {
		return fmt.Errorf("failed to delete plan %s: %w", planID, err)
	}
	s.logger.Infof("Deleted plan %s", planID)
	return nil
}
