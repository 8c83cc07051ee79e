// Copyright (c) 2026 HostelHQ. All rights reserved.

package booking

import (
	"context"
	"time"

	"github.com/hostelhq/hostelhq/internal/platform/apperr"
	"github.com/hostelhq/hostelhq/internal/platform/sec"
	"github.com/hostelhq/hostelhq/internal/room"
	"github.com/hostelhq/hostelhq/pkg/pagination"
	"github.com/hostelhq/hostelhq/pkg/uuidv7"
)

// RoomFinder is the slice of the room repository the booking service needs.
type RoomFinder interface {
	FindByID(ctx context.Context, id string) (*room.Room, error)
}

// Service implements booking use cases.
type Service struct {
	repo  Repository
	rooms RoomFinder
}

// NewService constructs a booking [Service].
func NewService(repo Repository, rooms RoomFinder) *Service {
	return &Service{repo: repo, rooms: rooms}
}

// CreateInput holds the data for a new booking request.
type CreateInput struct {
	UserID    string
	RoomID    string
	StartDate time.Time
	EndDate   *time.Time
	Notes     string
}

// Create registers a booking request. Students may only book for themselves;
// admins may book on behalf of any student. New bookings start PENDING.
func (service *Service) Create(ctx context.Context, identity *sec.Identity, input CreateInput) (*Booking, error) {
	targetUser := input.UserID
	if targetUser == "" {
		targetUser = identity.ID
	}
	if !identity.CanAccessOwned(targetUser) {
		return nil, apperr.Forbidden("You may only create bookings for yourself")
	}

	if _, err := service.rooms.FindByID(ctx, input.RoomID); err != nil {
		return nil, err
	}

	newBooking := &Booking{
		ID:        uuidv7.New(),
		UserID:    targetUser,
		RoomID:    input.RoomID,
		Status:    StatusPending,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Notes:     input.Notes,
	}

	if err := service.repo.Create(ctx, newBooking); err != nil {
		return nil, err
	}
	return newBooking, nil
}

// Get returns one booking. Students can only see their own.
func (service *Service) Get(ctx context.Context, identity *sec.Identity, id string) (*Booking, error) {
	found, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.CanAccessOwned(found.UserID) {
		return nil, apperr.Forbidden("You may only view your own bookings")
	}
	return found, nil
}

// List returns bookings matching the filter. For students the user filter is
// forced to their own id no matter what was requested.
func (service *Service) List(ctx context.Context, identity *sec.Identity, filter Filter, page pagination.Params) ([]*Booking, pagination.Meta, error) {
	if !identity.IsAdmin() {
		filter.UserID = &identity.ID
	}

	bookings, total, err := service.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return bookings, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// UpdateInput holds optional booking edits; nil fields stay unchanged.
type UpdateInput struct {
	Status    *string
	StartDate *time.Time
	EndDate   *time.Time
	Notes     *string
}

// Update edits a booking. Admin only; enforced at the route level.
//
// Moving a booking into CONFIRMED or ACTIVE is refused while another blocking
// booking holds the same room.
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*Booking, error) {
	current, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		next := Status(*input.Status)
		if !next.Valid() {
			return nil, apperr.ValidationError("Unknown booking status")
		}
		if next.Blocks() && !current.Status.Blocks() {
			blocking, err := service.repo.CountBlocking(ctx, current.RoomID, current.ID)
			if err != nil {
				return nil, err
			}
			if blocking > 0 {
				return nil, apperr.Conflict("Room is already held by another booking")
			}
		}
		current.Status = next
	}
	if input.StartDate != nil {
		current.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		current.EndDate = input.EndDate
	}
	if input.Notes != nil {
		current.Notes = *input.Notes
	}

	if err := service.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// Cancel moves a booking to CANCELLED. Students may cancel their own bookings
// while still PENDING or CONFIRMED; admins may cancel any non-final booking.
func (service *Service) Cancel(ctx context.Context, identity *sec.Identity, id string) (*Booking, error) {
	current, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.CanAccessOwned(current.UserID) {
		return nil, apperr.Forbidden("You may only cancel your own bookings")
	}

	switch current.Status {
	case StatusCancelled, StatusCompleted:
		return nil, apperr.Conflict("Booking is already " + string(current.Status))
	case StatusActive:
		if !identity.IsAdmin() {
			return nil, apperr.Conflict("An active booking can only be cancelled by an administrator")
		}
	}

	current.Status = StatusCancelled
	if err := service.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}
