package complaint

import (
	"context"

	"github.com/hostelhq/hostelhq/pkg/pagination"
)

// Filter narrows complaint listings. Nil fields are ignored.
type Filter struct {
	UserID   *string
	Status   *string
	Category *string
}

// Repository provides persistent storage for complaints and feedback.
type Repository interface {
	FindComplaintByID(ctx context.Context, id string) (*Complaint, error)
	ListComplaints(ctx context.Context, filter Filter, page pagination.Params) ([]*Complaint, int, error)
	CreateComplaint(ctx context.Context, complaint *Complaint) error
	UpdateComplaint(ctx context.Context, complaint *Complaint) error

	ListFeedback(ctx context.Context, userID *string, page pagination.Params) ([]*Feedback, int, error)
	CreateFeedback(ctx context.Context, feedback *Feedback) error
}
