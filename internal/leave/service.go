package leave

import (
	"context"
	"time"

	"github.com/hostelhq/hostelhq/internal/platform/apperr"
	"github.com/hostelhq/hostelhq/internal/platform/sec"
	"github.com/hostelhq/hostelhq/pkg/pagination"
	"github.com/hostelhq/hostelhq/pkg/uuidv7"
)

// Service implements leave application use cases.
type Service struct {
	repo Repository
}

// NewService constructs a leave [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ApplyInput holds the data for a new leave application.
type ApplyInput struct {
	FromDate time.Time
	ToDate   time.Time
	Reason   string
}

// Apply files a leave application for the caller. Starts PENDING.
func (service *Service) Apply(ctx context.Context, identity *sec.Identity, input ApplyInput) (*Application, error) {
	if input.ToDate.Before(input.FromDate) {
		return nil, apperr.ValidationError("to_date must not be before from_date")
	}

	application := &Application{
		ID:       uuidv7.New(),
		UserID:   identity.ID,
		FromDate: input.FromDate,
		ToDate:   input.ToDate,
		Reason:   input.Reason,
		Status:   StatusPending,
	}

	if err := service.repo.Create(ctx, application); err != nil {
		return nil, err
	}
	return application, nil
}

// Get returns one application. Students can only see their own.
func (service *Service) Get(ctx context.Context, identity *sec.Identity, id string) (*Application, error) {
	found, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.CanAccessOwned(found.UserID) {
		return nil, apperr.Forbidden("You may only view your own leave applications")
	}
	return found, nil
}

// List returns leave applications. Students always and only see their own.
func (service *Service) List(ctx context.Context, identity *sec.Identity, filter Filter, page pagination.Params) ([]*Application, pagination.Meta, error) {
	if !identity.IsAdmin() {
		filter.UserID = &identity.ID
	}

	applications, total, err := service.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return applications, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// Decide approves or rejects a pending application. Admin only; enforced at
// the route level. Decisions are final.
func (service *Service) Decide(ctx context.Context, id string, status Status, note string) (*Application, error) {
	current, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status != StatusPending {
		return nil, apperr.Conflict("Leave application has already been decided")
	}
	if status != StatusApproved && status != StatusRejected {
		return nil, apperr.ValidationError("Decision must be APPROVED or REJECTED")
	}

	current.Status = status
	current.DecisionNote = note

	if err := service.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}
