package models

import "time"

// MemberSummary is the row shape for member listings. MembershipEndDate
// carries the end date of the member's most-recently-ending membership,
// or NoMembershipEndDate when the member has none.
type MemberSummary struct {
	MemberID          string       `json:"member_id"`
	FullName          string       `json:"full_name"`
	Age               int          `json:"age"`
	Gender            Gender       `json:"gender"`
	PhoneNumber       string       `json:"phone_number"`
	Email             string       `json:"email"`
	Status            MemberStatus `json:"status"`
	PhotoURL          string       `json:"photo_url"`
	MembershipEndDate time.Time    `json:"membership_end_date"`
}

// MemberDetail is the full member aggregate: base fields plus the
// computed age, membership history and document list.
type MemberDetail struct {
	Member
	Age               int               `json:"age"`
	MembershipHistory []*Membership     `json:"membership_history"`
	Documents         []*MemberDocument `json:"documents"`
}

// PlanView is the plan shape embedded in composite responses. When the
// referenced plan cannot be resolved, Description carries a message
// explaining why instead of failing the whole call.
type PlanView struct {
	PlanID         string  `json:"plan_id"`
	PlanName       string  `json:"plan_name"`
	DurationMonths int     `json:"duration_months"`
	Price          float64 `json:"price"`
	Description    string  `json:"description"`
}

// MembershipDetail merges a membership with its payment trail and the
// resolved plan.
type MembershipDetail struct {
	Membership *Membership `json:"membership"`
	Payments   []*Payment  `json:"payments"`
	Plan       PlanView    `json:"plan"`
}
