// Package roommate handles roommate matching requests.
package roommate

import "time"

// Status is the matching state of a roommate request.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusMatched Status = "MATCHED"
	StatusClosed  Status = "CLOSED"
)

// Request is a student's ask to be paired with a roommate.
type Request struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	PreferredRoom string    `json:"preferred_room,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Status        Status    `json:"status"`
	MatchedWith   *string   `json:"matched_with,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
