package roommate

import (
	"context"

	"github.com/hostelhq/hostelhq/internal/platform/apperr"
	"github.com/hostelhq/hostelhq/internal/platform/sec"
	"github.com/hostelhq/hostelhq/pkg/pagination"
	"github.com/hostelhq/hostelhq/pkg/uuidv7"
)

// Service implements roommate request use cases.
type Service struct {
	repo Repository
}

// NewService constructs a roommate [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// OpenInput holds the data for a new roommate request.
type OpenInput struct {
	PreferredRoom string
	Notes         string
}

// Open files a roommate request for the caller. Starts PENDING.
func (service *Service) Open(ctx context.Context, identity *sec.Identity, input OpenInput) (*Request, error) {
	opened := &Request{
		ID:            uuidv7.New(),
		UserID:        identity.ID,
		PreferredRoom: input.PreferredRoom,
		Notes:         input.Notes,
		Status:        StatusPending,
	}

	if err := service.repo.Create(ctx, opened); err != nil {
		return nil, err
	}
	return opened, nil
}

// Get returns one request. Students can only see their own.
func (service *Service) Get(ctx context.Context, identity *sec.Identity, id string) (*Request, error) {
	found, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.CanAccessOwned(found.UserID) {
		return nil, apperr.Forbidden("You may only view your own roommate requests")
	}
	return found, nil
}

// List returns roommate requests. Students always and only see their own.
func (service *Service) List(ctx context.Context, identity *sec.Identity, filter Filter, page pagination.Params) ([]*Request, pagination.Meta, error) {
	if !identity.IsAdmin() {
		filter.UserID = &identity.ID
	}

	requests, total, err := service.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return requests, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// UpdateInput holds optional edits to a roommate request.
type UpdateInput struct {
	PreferredRoom *string
	Notes         *string
	Status        *Status
	MatchedWith   *string
}

// Update edits a request. Owners may tweak preferences or close their own
// request; only admins may mark one MATCHED. A closed request stays closed.
func (service *Service) Update(ctx context.Context, identity *sec.Identity, id string, input UpdateInput) (*Request, error) {
	current, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.CanAccessOwned(current.UserID) {
		return nil, apperr.Forbidden("You may only update your own roommate requests")
	}
	if current.Status == StatusClosed {
		return nil, apperr.Conflict("Roommate request is closed")
	}

	if input.PreferredRoom != nil {
		current.PreferredRoom = *input.PreferredRoom
	}
	if input.Notes != nil {
		current.Notes = *input.Notes
	}
	if input.Status != nil {
		if *input.Status == StatusMatched && !identity.IsAdmin() {
			return nil, apperr.Forbidden("Only an administrator can mark a request matched")
		}
		current.Status = *input.Status
	}
	if input.MatchedWith != nil {
		if !identity.IsAdmin() {
			return nil, apperr.Forbidden("Only an administrator can assign a match")
		}
		current.MatchedWith = input.MatchedWith
	}

	if err := service.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}
