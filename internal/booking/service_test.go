// Copyright (c) 2026 HostelHQ. All rights reserved.

package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhq/hostelhq/internal/booking"
	"github.com/hostelhq/hostelhq/internal/platform/apperr"
	"github.com/hostelhq/hostelhq/internal/platform/dberr"
	"github.com/hostelhq/hostelhq/internal/platform/sec"
	"github.com/hostelhq/hostelhq/internal/room"
	"github.com/hostelhq/hostelhq/pkg/pagination"
)

var (
	studentIdentity  = &sec.Identity{ID: "student-1", Role: sec.RoleStudent}
	intruderIdentity = &sec.Identity{ID: "student-2", Role: sec.RoleStudent}
	adminIdentity    = &sec.Identity{ID: "admin-1", Role: sec.RoleAdmin}
)

// fakeRepository keeps bookings in memory.
type fakeRepository struct {
	bookings map[string]*booking.Booking
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{bookings: make(map[string]*booking.Booking)}
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*booking.Booking, error) {
	if found, ok := r.bookings[id]; ok {
		copied := *found
		return &copied, nil
	}
	return nil, dberr.Wrap(pgx.ErrNoRows, "Booking")
}

func (r *fakeRepository) List(_ context.Context, filter booking.Filter, _ pagination.Params) ([]*booking.Booking, int, error) {
	matched := []*booking.Booking{}
	for _, candidate := range r.bookings {
		if filter.UserID != nil && candidate.UserID != *filter.UserID {
			continue
		}
		matched = append(matched, candidate)
	}
	return matched, len(matched), nil
}

func (r *fakeRepository) Create(_ context.Context, newBooking *booking.Booking) error {
	r.bookings[newBooking.ID] = newBooking
	return nil
}

func (r *fakeRepository) Update(_ context.Context, updated *booking.Booking) error {
	r.bookings[updated.ID] = updated
	return nil
}

func (r *fakeRepository) CountBlocking(_ context.Context, roomID, excludeID string) (int, error) {
	count := 0
	for _, candidate := range r.bookings {
		if candidate.RoomID == roomID && candidate.ID != excludeID && candidate.Status.Blocks() {
			count++
		}
	}
	return count, nil
}

// fakeRoomFinder knows one room.
type fakeRoomFinder struct {
	roomID string
}

func (f fakeRoomFinder) FindByID(_ context.Context, id string) (*room.Room, error) {
	if id == f.roomID {
		return &room.Room{ID: id, Number: "A-101"}, nil
	}
	return nil, dberr.Wrap(pgx.ErrNoRows, "Room")
}

func newTestService() (*booking.Service, *fakeRepository) {
	repo := newFakeRepository()
	return booking.NewService(repo, fakeRoomFinder{roomID: "room-1"}), repo
}

func seedBooking(repo *fakeRepository, id, userID, roomID string, status booking.Status) {
	repo.bookings[id] = &booking.Booking{
		ID:        id,
		UserID:    userID,
		RoomID:    roomID,
		Status:    status,
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

/*
TestService_Create verifies self-booking defaults, the on-behalf-of rules,
and the room existence check.
*/
func TestService_Create(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// 1. Omitting the user books for the caller, starting PENDING
	created, err := service.Create(ctx, studentIdentity, booking.CreateInput{
		RoomID:    "room-1",
		StartDate: start,
	})
	require.NoError(t, err)
	assert.Equal(t, studentIdentity.ID, created.UserID)
	assert.Equal(t, booking.StatusPending, created.Status)

	// 2. A student cannot book for someone else
	_, err = service.Create(ctx, studentIdentity, booking.CreateInput{
		UserID:    "student-2",
		RoomID:    "room-1",
		StartDate: start,
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// 3. An admin can
	onBehalf, err := service.Create(ctx, adminIdentity, booking.CreateInput{
		UserID:    "student-2",
		RoomID:    "room-1",
		StartDate: start,
	})
	require.NoError(t, err)
	assert.Equal(t, "student-2", onBehalf.UserID)

	// 4. A missing room fails the request
	_, err = service.Create(ctx, studentIdentity, booking.CreateInput{
		RoomID:    "no-such-room",
		StartDate: start,
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_Update_RoomHeld verifies a booking cannot be confirmed while
another CONFIRMED or ACTIVE booking holds the same room.
*/
func TestService_Update_RoomHeld(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	seedBooking(repo, "holder", "student-2", "room-1", booking.StatusActive)
	seedBooking(repo, "applicant", "student-1", "room-1", booking.StatusPending)
	seedBooking(repo, "elsewhere", "student-1", "room-9", booking.StatusPending)

	confirmed := string(booking.StatusConfirmed)

	// 1. Confirming into a held room conflicts
	_, err := service.Update(ctx, "applicant", booking.UpdateInput{Status: &confirmed})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// 2. A different room confirms fine
	updated, err := service.Update(ctx, "elsewhere", booking.UpdateInput{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, updated.Status)

	// 3. Once the holder cancels, the applicant goes through
	repo.bookings["holder"].Status = booking.StatusCancelled
	updated, err = service.Update(ctx, "applicant", booking.UpdateInput{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, updated.Status)

	// 4. An unknown status is rejected outright
	bogus := "TELEPORTED"
	_, err = service.Update(ctx, "applicant", booking.UpdateInput{Status: &bogus})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_Cancel verifies ownership, terminal states, and the admin-only
rule for active bookings.
*/
func TestService_Cancel(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	seedBooking(repo, "pending", "student-1", "room-1", booking.StatusPending)
	seedBooking(repo, "active", "student-1", "room-1", booking.StatusActive)
	seedBooking(repo, "done", "student-1", "room-1", booking.StatusCompleted)

	// 1. Someone else's booking is off limits
	_, err := service.Cancel(ctx, intruderIdentity, "pending")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// 2. The owner cancels a pending booking
	cancelled, err := service.Cancel(ctx, studentIdentity, "pending")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCancelled, cancelled.Status)

	// 3. Cancelling again conflicts, as does a completed booking
	_, err = service.Cancel(ctx, studentIdentity, "pending")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	_, err = service.Cancel(ctx, studentIdentity, "done")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// 4. An active booking needs an administrator
	_, err = service.Cancel(ctx, studentIdentity, "active")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	cancelled, err = service.Cancel(ctx, adminIdentity, "active")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCancelled, cancelled.Status)
}

/*
TestService_List_StudentScoped verifies students only ever see their own
bookings, whatever filter they send.
*/
func TestService_List_StudentScoped(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	seedBooking(repo, "mine-1", "student-1", "room-1", booking.StatusPending)
	seedBooking(repo, "mine-2", "student-1", "room-2", booking.StatusConfirmed)
	seedBooking(repo, "theirs", "student-2", "room-3", booking.StatusPending)

	// 1. A student asking for another student's bookings gets their own
	other := "student-2"
	mine, meta, err := service.List(ctx, studentIdentity, booking.Filter{UserID: &other}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	assert.Equal(t, 2, meta.Total)

	// 2. An admin's filter is honored
	theirs, _, err := service.List(ctx, adminIdentity, booking.Filter{UserID: &other}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}
