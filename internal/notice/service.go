package notice

import (
	"context"
	"time"

	"github.com/hostelhq/hostelhq/pkg/pagination"
	"github.com/hostelhq/hostelhq/pkg/uuidv7"
)

// Service implements notice and event use cases. Posting and deleting are
// admin-only, enforced at the route level.
type Service struct {
	repo Repository
}

// NewService constructs a notice [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NoticeInput holds the data for a new notice.
type NoticeInput struct {
	Title    string
	Body     string
	Audience Audience
	AuthorID string
}

// PostNotice publishes an announcement.
func (service *Service) PostNotice(ctx context.Context, input NoticeInput) (*Notice, error) {
	now := time.Now()
	posted := &Notice{
		ID:        uuidv7.New(),
		Title:     input.Title,
		Body:      input.Body,
		Audience:  input.Audience,
		AuthorID:  input.AuthorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repo.CreateNotice(ctx, posted); err != nil {
		return nil, err
	}
	return posted, nil
}

// ListNotices returns notices, optionally filtered by audience.
func (service *Service) ListNotices(ctx context.Context, audience *string, page pagination.Params) ([]*Notice, pagination.Meta, error) {
	notices, total, err := service.repo.ListNotices(ctx, audience, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return notices, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// DeleteNotice removes an announcement.
func (service *Service) DeleteNotice(ctx context.Context, id string) error {
	return service.repo.DeleteNotice(ctx, id)
}

// EventInput holds the data for a new event.
type EventInput struct {
	Title       string
	Description string
	Venue       string
	StartsAt    time.Time
	AuthorID    string
}

// PostEvent publishes an event.
func (service *Service) PostEvent(ctx context.Context, input EventInput) (*Event, error) {
	posted := &Event{
		ID:          uuidv7.New(),
		Title:       input.Title,
		Description: input.Description,
		Venue:       input.Venue,
		StartsAt:    input.StartsAt,
		AuthorID:    input.AuthorID,
		CreatedAt:   time.Now(),
	}

	if err := service.repo.CreateEvent(ctx, posted); err != nil {
		return nil, err
	}
	return posted, nil
}

// ListEvents returns events ordered by start time.
func (service *Service) ListEvents(ctx context.Context, page pagination.Params) ([]*Event, pagination.Meta, error) {
	events, total, err := service.repo.ListEvents(ctx, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return events, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// DeleteEvent removes an event.
func (service *Service) DeleteEvent(ctx context.Context, id string) error {
	return service.repo.DeleteEvent(ctx, id)
}
