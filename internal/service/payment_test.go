package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jatana/gymdesk/internal/errs"
	"github.com/jatana/gymdesk/internal/models"
)

func newPaymentService() (*PaymentService, *fakeMembershipRepo, *fakePaymentRepo) {
	payments := &fakePaymentRepo{}
	memberships := newFakeMembershipRepo(payments)
	return NewPaymentService(memberships, payments, testLogger()), memberships, payments
}

func TestRecordPayment(t *testing.T) {
	svc, memberships, _ := newPaymentService()
	memberships.memberships = append(memberships.memberships, &models.Membership{
		MembershipID: "ms-1", MemberID: "M1", Status: models.MembershipStatusActive,
	})

	payment, err := svc.RecordPayment(context.Background(), "ms-1", PaymentInput{
		Amount:          500,
		PaymentDateTime: time.Date(2026, time.October, 1, 9, 0, 0, 0, time.UTC),
		Method:          models.PaymentMethodCash,
		TransactionID:   "T2",
		ReceiptURL:      "https://receipts.test/T2.pdf",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, payment.PaymentID)
	assert.Equal(t, "ms-1", payment.MembershipID)
	assert.Equal(t, 500.0, payment.PricePaid)
	assert.Equal(t, models.PaymentMethodCash, payment.Method)
	assert.Equal(t, "https://receipts.test/T2.pdf", payment.ReceiptURL)
}

func TestRecordPaymentUnknownMembership(t *testing.T) {
	svc, _, _ := newPaymentService()

	_, err := svc.RecordPayment(context.Background(), "nope", PaymentInput{
		Amount: 500, PaymentDateTime: time.Now(), Method: models.PaymentMethodCard,
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRecordPaymentInvalidMethod(t *testing.T) {
	svc, memberships, _ := newPaymentService()
	memberships.memberships = append(memberships.memberships, &models.Membership{MembershipID: "ms-1"})

	_, err := svc.RecordPayment(context.Background(), "ms-1", PaymentInput{
		Amount: 500, PaymentDateTime: time.Now(), Method: "CHEQUE",
	})
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestListPaymentsForMembership(t *testing.T) {
	svc, memberships, _ := newPaymentService()
	memberships.memberships = append(memberships.memberships, &models.Membership{MembershipID: "ms-1"})

	for _, txn := range []string{"T1", "T2", "T3"} {
		_, err := svc.RecordPayment(context.Background(), "ms-1", PaymentInput{
			Amount: 100, PaymentDateTime: time.Now(), Method: models.PaymentMethodCard, TransactionID: txn,
		})
		require.NoError(t, err)
	}

	payments, err := svc.ListPaymentsForMembership(context.Background(), "ms-1")
	require.NoError(t, err)
	require.Len(t, payments, 3)
	assert.Equal(t, "T1", payments[0].TransactionID, "payments keep storage order")

	none, err := svc.ListPaymentsForMembership(context.Background(), "ms-2")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
