// Copyright (c) 2026 HostelHQ. All rights reserved.

package booking

import (
	"context"

	"github.com/hostelhq/hostelhq/pkg/pagination"
)

// Filter narrows booking listings. Nil fields are ignored.
type Filter struct {
	UserID *string
	RoomID *string
	Status *string
}

// Repository provides persistent storage for bookings.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter, page pagination.Params) ([]*Booking, int, error)
	Create(ctx context.Context, booking *Booking) error
	Update(ctx context.Context, booking *Booking) error
	// CountBlocking returns how many CONFIRMED or ACTIVE bookings exist for a
	// room, excluding the given booking id when it is non-empty.
	CountBlocking(ctx context.Context, roomID, excludeID string) (int, error)
}
