package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jatana/gymdesk/internal/models"
	"github.com/jatana/gymdesk/internal/repository"
)

type membershipRepository struct {
	db *sql.DB
}

func NewMembershipRepository(db *sql.DB) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

const membershipColumns = `membership_id, member_id, plan_id, start_date, end_date, price_paid, status, created_at, updated_at`

func scanMembership(row interface{ Scan(...any) error }) (*models.Membership, error) {
	m := &models.Membership{}
	err := row.Scan(
		&m.MembershipID, &m.MemberID, &m.PlanID, &m.StartDate, &m.EndDate,
		&m.PricePaid, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// CreateWithPayment inserts the membership and its initial payment in a
// single transaction. If either insert fails, neither row lands.
func (r *membershipRepository) CreateWithPayment(ctx context.Context, membership *models.Membership, payment *models.Payment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	membership.CreatedAt = now
	membership.UpdatedAt = now
	_, err = tx.ExecContext(ctx,
		`INSERT INTO memberships (membership_id, member_id, plan_id, start_date, end_date, price_paid, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		membership.MembershipID, membership.MemberID, membership.PlanID,
		membership.StartDate, membership.EndDate, membership.PricePaid,
		membership.Status, membership.CreatedAt, membership.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}

	payment.CreatedAt = now
	_, err = tx.ExecContext(ctx,
		`INSERT INTO payments (payment_id, membership_id, price_paid, payment_date_time, payment_method, transaction_id, receipt_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		payment.PaymentID, payment.MembershipID, payment.PricePaid,
		payment.PaymentDateTime, payment.Method, payment.TransactionID,
		payment.ReceiptURL, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit membership transaction: %w", err)
	}
	return nil
}

func (r *membershipRepository) GetByID(ctx context.Context, membershipID string) (*models.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE membership_id = $1`
	membership, err := scanMembership(r.db.QueryRowContext(ctx, query, membershipID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return membership, nil
}

func (r *membershipRepository) GetByMemberID(ctx context.Context, memberID string) ([]*models.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE member_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*models.Membership
	for rows.Next() {
		membership, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, membership)
	}
	return memberships, rows.Err()
}

func (r *membershipRepository) GetLatestByEndDate(ctx context.Context, memberID string) (*models.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE member_id = $1 ORDER BY end_date DESC LIMIT 1`
	membership, err := scanMembership(r.db.QueryRowContext(ctx, query, memberID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest membership: %w", err)
	}
	return membership, nil
}
