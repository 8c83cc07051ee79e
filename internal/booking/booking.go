// Copyright (c) 2026 HostelHQ. All rights reserved.

// Package booking manages room allocations for students, from the initial
// request through check-out.
package booking

import "time"

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusActive    Status = "ACTIVE"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// Valid reports whether the status is one of the known lifecycle states.
func (status Status) Valid() bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusActive, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Blocks reports whether a booking in this status keeps its room occupied.
func (status Status) Blocks() bool {
	return status == StatusConfirmed || status == StatusActive
}

// Booking ties a student to a room for a period of time.
type Booking struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	RoomID    string     `json:"room_id"`
	Status    Status     `json:"status"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
