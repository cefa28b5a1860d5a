package models

import "time"

// PaymentStatus is the settled/owing flag carried on an enrollment.
type PaymentStatus string

const (
	PaymentPaid  PaymentStatus = "paid"
	PaymentOwing PaymentStatus = "owing"
)

// AssignmentRecord places a student in a year/section for the current school
// year. UserID is a weak reference; legacy rows only carry the username. A
// nil ID marks a virtual row that has not been saved yet. The sanctions field
// is free-form: historical data entry mixed an embedded ISO date, a plain day
// count and prose notes in the one column.
type AssignmentRecord struct {
	ID            *int64        `db:"id" json:"id,omitempty"`
	UserID        *int64        `db:"user_id" json:"user_id,omitempty"`
	Username      string        `db:"username" json:"username"`
	Year          string        `db:"year" json:"year"`
	Section       string        `db:"section" json:"section"`
	Department    *string       `db:"department" json:"department,omitempty"`
	Major         *string       `db:"major" json:"major,omitempty"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	OwingAmount   *float64      `db:"owing_amount" json:"owing_amount,omitempty"`
	Sanctions     *string       `db:"sanctions" json:"sanctions,omitempty"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// AssignmentFilter scopes enrollment queries.
type AssignmentFilter struct {
	UserID     *int64
	Username   string
	Year       string
	Section    string
	Department string
}
