// Copyright (c) 2026 HostelHQ. All rights reserved.

package room_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhq/hostelhq/internal/platform/apperr"
	"github.com/hostelhq/hostelhq/internal/platform/dberr"
	"github.com/hostelhq/hostelhq/internal/room"
	"github.com/hostelhq/hostelhq/pkg/pagination"
)

// fakeRepository is an in-memory stand-in for the room repository.
type fakeRepository struct {
	rooms    map[string]*room.Room
	blocking map[string]int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		rooms:    make(map[string]*room.Room),
		blocking: make(map[string]int),
	}
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*room.Room, error) {
	if found, ok := r.rooms[id]; ok {
		return found, nil
	}
	return nil, dberr.Wrap(pgx.ErrNoRows, "Room")
}

func (r *fakeRepository) List(_ context.Context, _ room.Filter, _ pagination.Params) ([]*room.Room, int, error) {
	all := []*room.Room{}
	for _, candidate := range r.rooms {
		all = append(all, candidate)
	}
	return all, len(all), nil
}

func (r *fakeRepository) Create(_ context.Context, newRoom *room.Room) error {
	r.rooms[newRoom.ID] = newRoom
	return nil
}

func (r *fakeRepository) Update(_ context.Context, updated *room.Room) error {
	r.rooms[updated.ID] = updated
	return nil
}

func (r *fakeRepository) CountBlockingBookings(_ context.Context, roomID string) (int, error) {
	return r.blocking[roomID], nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.rooms[id]; !ok {
		return dberr.Wrap(pgx.ErrNoRows, "Room")
	}
	delete(r.rooms, id)
	return nil
}

/*
TestService_Delete_BlockedByBookings verifies a room with CONFIRMED or
ACTIVE bookings cannot be removed, and a free room can.
*/
func TestService_Delete_BlockedByBookings(t *testing.T) {
	repo := newFakeRepository()
	service := room.NewService(repo)

	repo.rooms["room-1"] = &room.Room{ID: "room-1", Number: "A-101", Status: room.StatusOccupied}
	repo.rooms["room-2"] = &room.Room{ID: "room-2", Number: "A-102", Status: room.StatusAvailable}
	repo.blocking["room-1"] = 1

	// 1. An occupied room conflicts
	err := service.Delete(context.Background(), "room-1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	// 2. A free room deletes cleanly
	assert.NoError(t, service.Delete(context.Background(), "room-2"))
	_, stillThere := repo.rooms["room-2"]
	assert.False(t, stillThere)

	// 3. A missing room reports NOT_FOUND
	err = service.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_Create_DefaultsToAvailable verifies new rooms start AVAILABLE.
*/
func TestService_Create_DefaultsToAvailable(t *testing.T) {
	repo := newFakeRepository()
	service := room.NewService(repo)

	created, err := service.Create(context.Background(), room.CreateInput{
		Number:      "B-201",
		Type:        "double",
		Capacity:    2,
		Floor:       2,
		Block:       "B",
		MonthlyRent: 750000,
	})
	require.NoError(t, err)
	assert.Equal(t, room.StatusAvailable, created.Status)
	assert.NotEmpty(t, created.ID)
}
