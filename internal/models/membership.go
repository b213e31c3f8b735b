package models

import "time"

// MembershipStatus represents the status of a purchased membership.
// EXPIRED and CANCELLED are part of the closed set but no current code
// path moves a membership out of ACTIVE.
type MembershipStatus string

const (
	MembershipStatusActive    MembershipStatus = "ACTIVE"
	MembershipStatusExpired   MembershipStatus = "EXPIRED"
	MembershipStatusCancelled MembershipStatus = "CANCELLED"
)

// Valid reports whether s is one of the known membership statuses.
func (s MembershipStatus) Valid() bool {
	switch s {
	case MembershipStatusActive, MembershipStatusExpired, MembershipStatusCancelled:
		return true
	}
	return false
}

// NoMembershipEndDate is the sentinel end date reported for members that
// have never purchased a membership.
var NoMembershipEndDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Membership is one purchased instance of a plan for a member, with a
// validity window. Ids are system generated.
type Membership struct {
	MembershipID string           `json:"membership_id" db:"membership_id"`
	MemberID     string           `json:"member_id" db:"member_id"`
	PlanID       string           `json:"plan_id" db:"plan_id"`
	StartDate    time.Time        `json:"start_date" db:"start_date"`
	EndDate      time.Time        `json:"end_date" db:"end_date"`
	PricePaid    float64          `json:"price_paid" db:"price_paid"`
	Status       MembershipStatus `json:"status" db:"status"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" db:"updated_at"`
}
