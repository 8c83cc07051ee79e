// Copyright (c) 2026 HostelHQ. All rights reserved.

package room

import (
	"context"

	"github.com/hostelhq/hostelhq/pkg/pagination"
)

// Filter narrows a room listing; present fields AND together.
type Filter struct {
	Status *string
	Block  *string
	Type   *string
}

// Repository is the data access contract for rooms.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter, page pagination.Params) ([]*Room, int, error)
	Create(ctx context.Context, room *Room) error
	Update(ctx context.Context, room *Room) error

	// CountBlockingBookings returns the number of ACTIVE or CONFIRMED
	// bookings referencing the room. Deletion is legal only when zero.
	CountBlockingBookings(ctx context.Context, roomID string) (int, error)

	Delete(ctx context.Context, id string) error
}
