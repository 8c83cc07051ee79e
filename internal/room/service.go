// Copyright (c) 2026 HostelHQ. All rights reserved.

package room

import (
	"context"

	"github.com/hostelhq/hostelhq/internal/platform/apperr"
	"github.com/hostelhq/hostelhq/pkg/pagination"
	"github.com/hostelhq/hostelhq/pkg/uuidv7"
)

// Service implements room inventory use cases.
type Service struct {
	repo Repository
}

// NewService constructs a room [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput holds the data for a new room.
type CreateInput struct {
	Number      string
	Type        string
	Capacity    int
	Floor       int
	Block       string
	MonthlyRent int64
}

// Create adds a new room to the inventory.
//
// Returns [apperr.Conflict] when the room number is already taken.
func (service *Service) Create(ctx context.Context, input CreateInput) (*Room, error) {
	newRoom := &Room{
		ID:          uuidv7.New(),
		Number:      input.Number,
		Type:        input.Type,
		Capacity:    input.Capacity,
		Floor:       input.Floor,
		Block:       input.Block,
		MonthlyRent: input.MonthlyRent,
		Status:      StatusAvailable,
	}

	if err := service.repo.Create(ctx, newRoom); err != nil {
		return nil, err
	}
	return newRoom, nil
}

// Get returns one room by ID.
func (service *Service) Get(ctx context.Context, id string) (*Room, error) {
	return service.repo.FindByID(ctx, id)
}

// List returns rooms matching the filter plus pagination metadata.
func (service *Service) List(ctx context.Context, filter Filter, page pagination.Params) ([]*Room, pagination.Meta, error) {
	rooms, total, err := service.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return rooms, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// UpdateInput holds optional room edits; nil fields stay unchanged.
type UpdateInput struct {
	Number      *string
	Type        *string
	Capacity    *int
	Floor       *int
	Block       *string
	MonthlyRent *int64
	Status      *string
}

// Update edits a room.
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*Room, error) {
	existing, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Number != nil {
		existing.Number = *input.Number
	}
	if input.Type != nil {
		existing.Type = *input.Type
	}
	if input.Capacity != nil {
		existing.Capacity = *input.Capacity
	}
	if input.Floor != nil {
		existing.Floor = *input.Floor
	}
	if input.Block != nil {
		existing.Block = *input.Block
	}
	if input.MonthlyRent != nil {
		existing.MonthlyRent = *input.MonthlyRent
	}
	if input.Status != nil {
		existing.Status = Status(*input.Status)
	}

	if err := service.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a room from the inventory.
//
// Returns [apperr.Conflict] while an ACTIVE or CONFIRMED booking still
// references the room.
func (service *Service) Delete(ctx context.Context, id string) error {
	if _, err := service.repo.FindByID(ctx, id); err != nil {
		return err
	}

	blocking, err := service.repo.CountBlockingBookings(ctx, id)
	if err != nil {
		return err
	}
	if blocking > 0 {
		return apperr.Conflict("Room has active bookings and cannot be deleted")
	}

	return service.repo.Delete(ctx, id)
}
