package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/jatana/gymdesk/internal/errs"
	"github.com/jatana/gymdesk/internal/models"
	"github.com/jatana/gymdesk/internal/repository"
)

type planRepository struct {
	db *sql.DB
}

func NewPlanRepository(db *sql.DB) repository.PlanRepository {
	return &planRepository{db: db}
}

const planColumns = `plan_id, plan_name, duration_months, price, description, created_at, updated_at`

func scanPlan(row interface{ Scan(...any) error }) (*models.Plan, error) {
	plan := &models.Plan{}
	err := row.Scan(
		&plan.PlanID, &plan.PlanName, &plan.DurationMonths, &plan.Price,
		&plan.Description, &plan.CreatedAt, &plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (r *planRepository) Create(ctx context.Context, plan *models.Plan) (*models.Plan, error) {
	query := `INSERT INTO plans (plan_id, plan_name, duration_months, price, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`
	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, query,
		plan.PlanID, plan.PlanName, plan.DurationMonths, plan.Price,
		plan.Description, plan.CreatedAt, plan.UpdatedAt,
	).Scan(&plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("plan %s: %w", plan.PlanID, errs.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}
	return plan, nil
}

func (r *planRepository) GetByID(ctx context.Context, planID string) (*models.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE plan_id = $1`
	plan, err := scanPlan(r.db.QueryRowContext(ctx, query, planID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return plan, nil
}

func (r *planRepository) Exists(ctx context.Context, planID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM plans WHERE plan_id = $1)`, planID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check plan existence: %w", err)
	}
	return exists, nil
}

func (r *planRepository) List(ctx context.Context) ([]*models.Plan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+planColumns+` FROM plans`)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func (r *planRepository) Update(ctx context.Context, plan *models.Plan) (*models.Plan, error) {
	query := `UPDATE plans SET duration_months=$2, price=$3, description=$4, updated_at=$5
		WHERE plan_id=$1 RETURNING ` + planColumns
	plan.UpdatedAt = time.Now()
	updated, err := scanPlan(r.db.QueryRowContext(ctx, query,
		plan.PlanID, plan.DurationMonths, plan.Price, plan.Description, plan.UpdatedAt,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}
	return updated, nil
}

func (r *planRepository) Delete(ctx context.Context, planID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE plan_id = $1`, planID)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("plan %s: %w", planID, errs.ErrNotFound)
	}
	return nil
}
