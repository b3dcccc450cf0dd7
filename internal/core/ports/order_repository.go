package ports

import (
	"context"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
)

// OrderScope narrows an order lookup to what an actor may see.
// Zero fields mean no filter (manager).
type OrderScope struct {
	UserID         uint
	DeliveryCrewID uint
}

// ListOrdersFilter carries all query parameters for listing orders.
// The scope is always enforced by the service layer.
type ListOrdersFilter struct {
	Scope  OrderScope
	Status *domain.OrderStatus // optional
	Page   int                 // 1-based
	Limit  int                 // max rows per page (capped at 100 by service)
}

// OrderRepository defines persistence operations for orders and their lines.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	CreateLines(ctx context.Context, lines []*domain.OrderLine) error
	// FindByID retrieves an order by id. When scope fields are non-zero the
	// query is additionally filtered by them, so out-of-scope orders are not found.
	FindByID(ctx context.Context, id uint, scope OrderScope) (*domain.Order, error)
	// List returns a page of orders matching filter and the total count.
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, int64, error)
	Lines(ctx context.Context, orderID uint) ([]*domain.OrderLine, error)
	UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error
	AssignDeliveryCrew(ctx context.Context, id uint, crewID uint) error
}

// OrderEventRepository persists the order audit trail.
type OrderEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.OrderEvent) error
}
