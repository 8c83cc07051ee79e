// Package leave handles student leave applications.
package leave

import "time"

// Status is the decision state of a leave application.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Application is a student's request to be away from the hostel.
type Application struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	FromDate     time.Time `json:"from_date"`
	ToDate       time.Time `json:"to_date"`
	Reason       string    `json:"reason"`
	Status       Status    `json:"status"`
	DecisionNote string    `json:"decision_note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
