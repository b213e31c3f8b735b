package models

import "time"

// PaymentMethod is the closed set of accepted payment methods.
type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "CASH"
	PaymentMethodCard  PaymentMethod = "CARD"
	PaymentMethodOther PaymentMethod = "OTHER"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodOther:
		return true
	}
	return false
}

// Payment is one financial transaction applied against a membership.
// The payment trail is append-only: payments are never updated or
// deleted.
type Payment struct {
	PaymentID       string        `json:"payment_id" db:"payment_id"`
	MembershipID    string        `json:"membership_id" db:"membership_id"`
	PricePaid       float64       `json:"price_paid" db:"price_paid"`
	PaymentDateTime time.Time     `json:"payment_date_time" db:"payment_date_time"`
	Method          PaymentMethod `json:"payment_method" db:"payment_method"`
	TransactionID   string        `json:"transaction_id" db:"transaction_id"`
	ReceiptURL      string        `json:"receipt_url" db:"receipt_url"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
}
