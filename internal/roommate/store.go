package roommate

import (
	"context"

	"github.com/hostelhq/hostelhq/pkg/pagination"
)

// Filter narrows roommate request listings. Nil fields are ignored.
type Filter struct {
	UserID *string
	Status *string
}

// Repository provides persistent storage for roommate requests.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context, filter Filter, page pagination.Params) ([]*Request, int, error)
	Create(ctx context.Context, request *Request) error
	Update(ctx context.Context, request *Request) error
}
