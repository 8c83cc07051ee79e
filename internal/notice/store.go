package notice

import (
	"context"

	"github.com/hostelhq/hostelhq/pkg/pagination"
)

// Repository provides persistent storage for notices and events.
type Repository interface {
	FindNoticeByID(ctx context.Context, id string) (*Notice, error)
	ListNotices(ctx context.Context, audience *string, page pagination.Params) ([]*Notice, int, error)
	CreateNotice(ctx context.Context, notice *Notice) error
	DeleteNotice(ctx context.Context, id string) error

	FindEventByID(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context, page pagination.Params) ([]*Event, int, error)
	CreateEvent(ctx context.Context, event *Event) error
	DeleteEvent(ctx context.Context, id string) error
}
