package models

import "time"

// Gender is the closed set of gender values accepted for a member.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Valid reports whether g is one of the known gender values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// MemberStatus represents the lifecycle status of a member.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "ACTIVE"
	MemberStatusInactive MemberStatus = "INACTIVE"
)

// Valid reports whether s is one of the known member statuses.
func (s MemberStatus) Valid() bool {
	switch s {
	case MemberStatusActive, MemberStatusInactive:
		return true
	}
	return false
}

// Member represents a gym patron. The id is supplied by the caller at
// registration time and never changes.
type Member struct {
	MemberID    string       `json:"member_id" db:"member_id"`
	FirstName   string       `json:"first_name" db:"first_name"`
	LastName    string       `json:"last_name" db:"last_name"`
	FullName    string       `json:"full_name" db:"full_name"`
	DateOfBirth *time.Time   `json:"date_of_birth" db:"date_of_birth"`
	Gender      Gender       `json:"gender" db:"gender"`
	PhoneNumber string       `json:"phone_number" db:"phone_number"`
	Email       string       `json:"email" db:"email"`
	Address     string       `json:"address" db:"address"`
	Status      MemberStatus `json:"status" db:"status"`
	PhotoURL    string       `json:"photo_url" db:"photo_url"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// IsActive returns true if the member status is ACTIVE.
func (m *Member) IsActive() bool {
	return m.Status == MemberStatusActive
}

// AgeAt returns the member's age in whole years at the given time, or 0
// when the date of birth is unknown.
func (m *Member) AgeAt(now time.Time) int {
	if m.DateOfBirth == nil {
		return 0
	}
	dob := *m.DateOfBirth
	years := now.Year() - dob.Year()
	if dob.AddDate(years, 0, 0).After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
