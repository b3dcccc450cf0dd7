package ports

import (
	"context"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
)

// CartRepository stores cart lines. The (user, menu item) pair is unique at
// the storage level; Add returns domain.ErrCartLineExists on a duplicate.
type CartRepository interface {
	Add(ctx context.Context, line *domain.CartLine) error
	ListByUser(ctx context.Context, userID uint) ([]*domain.CartLine, error)
	// ClearByUser deletes every line of the user and reports how many were removed.
	ClearByUser(ctx context.Context, userID uint) (int64, error)
}

// Repositories are the stores bound to one unit of work.
type Repositories struct {
	Carts  CartRepository
	Orders OrderRepository
}

// UnitOfWork runs fn atomically: if fn returns an error nothing it wrote is kept.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repositories) error) error
}
