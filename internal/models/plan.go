package models

import "time"

// Plan is a purchasable membership tier. The plan name acts as the
// natural key: PlanID is derived from it at creation and is immutable.
type Plan struct {
	PlanID         string    `json:"plan_id" db:"plan_id"`
	PlanName       string    `json:"plan_name" db:"plan_name"`
	DurationMonths int       `json:"duration_months" db:"duration_months"`
	Price          float64   `json:"price" db:"price"`
	Description    string    `json:"description" db:"description"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
