package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jatana/gymdesk/internal/models"
)

func testMembershipAndPayment() (*models.Membership, *models.Payment) {
	membership := &models.Membership{
		MembershipID: "ms-1",
		MemberID:     "M1",
		PlanID:       "GOLD",
		StartDate:    time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2027, time.September, 1, 0, 0, 0, 0, time.UTC),
		PricePaid:    999.99,
		Status:       models.MembershipStatusActive,
	}
	payment := &models.Payment{
		PaymentID:       "pay-1",
		MembershipID:    "ms-1",
		PricePaid:       999.99,
		PaymentDateTime: time.Date(2026, time.September, 1, 10, 30, 0, 0, time.UTC),
		Method:          models.PaymentMethodCard,
		TransactionID:   "T1",
	}
	return membership, payment
}

func TestCreateWithPayment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMembershipRepository(db)
	membership, payment := testMembershipAndPayment()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO memberships`)).
		WithArgs(
			membership.MembershipID, membership.MemberID, membership.PlanID,
			membership.StartDate, membership.EndDate, membership.PricePaid,
			membership.Status, sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO payments`)).
		WithArgs(
			payment.PaymentID, payment.MembershipID, payment.PricePaid,
			payment.PaymentDateTime, payment.Method, payment.TransactionID,
			payment.ReceiptURL, sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateWithPayment(context.Background(), membership, payment)
	require.NoError(t, err)
}

func TestCreateWithPaymentRollsBackOnPaymentFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMembershipRepository(db)
	membership, payment := testMembershipAndPayment()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO memberships`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO payments`)).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.CreateWithPayment(context.Background(), membership, payment)
	assert.Error(t, err, "the membership insert must not survive a failed payment insert")
}

func TestMembershipGetLatestByEndDateNone(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMembershipRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+membershipColumns+` FROM memberships WHERE member_id = $1 ORDER BY end_date DESC LIMIT 1`)).
		WithArgs("M1").
		WillReturnError(sql.ErrNoRows)

	membership, err := repo.GetLatestByEndDate(context.Background(), "M1")
	require.NoError(t, err)
	assert.Nil(t, membership)
}

func TestMembershipGetByMemberID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMembershipRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"membership_id", "member_id", "plan_id", "start_date", "end_date",
		"price_paid", "status", "created_at", "updated_at",
	}).
		AddRow("ms-1", "M1", "GOLD", now, now.AddDate(1, 0, 0), 999.99, "ACTIVE", now, now).
		AddRow("ms-2", "M1", "SILVER", now, now.AddDate(0, 6, 0), 499.99, "ACTIVE", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+membershipColumns+` FROM memberships WHERE member_id = $1 ORDER BY created_at`)).
		WithArgs("M1").
		WillReturnRows(rows)

	memberships, err := repo.GetByMemberID(context.Background(), "M1")
	require.NoError(t, err)
	require.Len(t, memberships, 2)
	assert.Equal(t, "ms-1", memberships[0].MembershipID)
	assert.Equal(t, "SILVER", memberships[1].PlanID)
}
