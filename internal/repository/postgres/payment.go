package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jatana/gymdesk/internal/models"
	"github.com/jatana/gymdesk/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `payment_id, membership_id, price_paid, payment_date_time, payment_method, transaction_id, receipt_url, created_at`

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(
		&p.PaymentID, &p.MembershipID, &p.PricePaid, &p.PaymentDateTime,
		&p.Method, &p.TransactionID, &p.ReceiptURL, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	query := `INSERT INTO payments (payment_id, membership_id, price_paid, payment_date_time, payment_method, transaction_id, receipt_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`
	payment.CreatedAt = time.Now()
	err := r.db.QueryRowContext(ctx, query,
		payment.PaymentID, payment.MembershipID, payment.PricePaid,
		payment.PaymentDateTime, payment.Method, payment.TransactionID,
		payment.ReceiptURL, payment.CreatedAt,
	).Scan(&payment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return payment, nil
}

func (r *paymentRepository) GetByMembershipID(ctx context.Context, membershipID string) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE membership_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, membershipID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}
