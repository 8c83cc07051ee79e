// Copyright (c) 2026 HostelHQ. All rights reserved.

// Package room manages the hostel's physical room inventory.
package room

import "time"

// Status is the occupancy state of a room.
type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusOccupied    Status = "OCCUPIED"
	StatusMaintenance Status = "MAINTENANCE"
)

// Room represents one rentable room.
//
// # Rules
//   - Number is unique across the hostel.
//   - A room with an ACTIVE or CONFIRMED booking cannot be deleted.
type Room struct {
	ID       string `json:"id"`
	Number   string `json:"number"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
	Floor    int    `json:"floor"`
	Block    string `json:"block"`

	// MonthlyRent is in minor currency units.
	MonthlyRent int64  `json:"monthly_rent"`
	Status      Status `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
