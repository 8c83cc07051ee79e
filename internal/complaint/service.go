package complaint

import (
	"context"

	"github.com/hostelhq/hostelhq/internal/platform/apperr"
	"github.com/hostelhq/hostelhq/internal/platform/sec"
	"github.com/hostelhq/hostelhq/pkg/pagination"
	"github.com/hostelhq/hostelhq/pkg/uuidv7"
)

// Service implements complaint and feedback use cases.
type Service struct {
	repo Repository
}

// NewService constructs a complaint [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ComplaintInput holds the data for a new complaint.
type ComplaintInput struct {
	Category    string
	Subject     string
	Description string
}

// FileComplaint raises a new complaint owned by the caller. Starts OPEN.
func (service *Service) FileComplaint(ctx context.Context, identity *sec.Identity, input ComplaintInput) (*Complaint, error) {
	filed := &Complaint{
		ID:          uuidv7.New(),
		UserID:      identity.ID,
		Category:    input.Category,
		Subject:     input.Subject,
		Description: input.Description,
		Status:      StatusOpen,
	}

	if err := service.repo.CreateComplaint(ctx, filed); err != nil {
		return nil, err
	}
	return filed, nil
}

// GetComplaint returns one complaint. Students can only see their own.
func (service *Service) GetComplaint(ctx context.Context, identity *sec.Identity, id string) (*Complaint, error) {
	found, err := service.repo.FindComplaintByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.CanAccessOwned(found.UserID) {
		return nil, apperr.Forbidden("You may only view your own complaints")
	}
	return found, nil
}

// ListComplaints returns complaints. Students always and only see their own.
func (service *Service) ListComplaints(ctx context.Context, identity *sec.Identity, filter Filter, page pagination.Params) ([]*Complaint, pagination.Meta, error) {
	if !identity.IsAdmin() {
		filter.UserID = &identity.ID
	}

	complaints, total, err := service.repo.ListComplaints(ctx, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return complaints, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// Resolve moves a complaint to a new status with an optional resolution note.
// Admin only; enforced at the route level. A RESOLVED complaint stays closed.
func (service *Service) Resolve(ctx context.Context, id string, status Status, resolution string) (*Complaint, error) {
	current, err := service.repo.FindComplaintByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status == StatusResolved {
		return nil, apperr.Conflict("Complaint is already resolved")
	}

	current.Status = status
	if resolution != "" {
		current.Resolution = resolution
	}

	if err := service.repo.UpdateComplaint(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// FeedbackInput holds the data for a new feedback entry.
type FeedbackInput struct {
	Rating  int
	Comment string
}

// LeaveFeedback records a rating from the caller.
func (service *Service) LeaveFeedback(ctx context.Context, identity *sec.Identity, input FeedbackInput) (*Feedback, error) {
	entry := &Feedback{
		ID:      uuidv7.New(),
		UserID:  identity.ID,
		Rating:  input.Rating,
		Comment: input.Comment,
	}

	if err := service.repo.CreateFeedback(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListFeedback returns feedback entries. Students always and only see their
// own.
func (service *Service) ListFeedback(ctx context.Context, identity *sec.Identity, page pagination.Params) ([]*Feedback, pagination.Meta, error) {
	var userID *string
	if !identity.IsAdmin() {
		userID = &identity.ID
	}

	entries, total, err := service.repo.ListFeedback(ctx, userID, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return entries, pagination.NewMeta(page.Page, page.Limit, total), nil
}
