package leave

import (
	"context"

	"github.com/hostelhq/hostelhq/pkg/pagination"
)

// Filter narrows leave application listings. Nil fields are ignored.
type Filter struct {
	UserID *string
	Status *string
}

// Repository provides persistent storage for leave applications.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Application, error)
	List(ctx context.Context, filter Filter, page pagination.Params) ([]*Application, int, error)
	Create(ctx context.Context, application *Application) error
	Update(ctx context.Context, application *Application) error
}
