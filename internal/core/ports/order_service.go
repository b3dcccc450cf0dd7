package ports

import (
	"context"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
)

// PlaceOrderResult is returned after a cart has been converted into an order.
type PlaceOrderResult struct {
	Order     *domain.Order
	LineCount int
}

// UpdateOrderInput carries exactly one update intent. Status holds the raw
// client token; it is parsed by the order engine.
type UpdateOrderInput struct {
	OrderID        uint
	Status         *string
	DeliveryCrewID *uint
}

// ListOrdersInput carries the optional list parameters. The role scope is
// derived from the actor, never from the input.
type ListOrdersInput struct {
	Status string // optional status token
	Page   int
	Limit  int
}

// ListOrdersResult is returned by ListOrders.
type ListOrdersResult struct {
	Items      []*domain.Order
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// OrderDetail is an order together with its frozen lines.
type OrderDetail struct {
	Order *domain.Order
	Lines []*domain.OrderLine
}

// OrderService is the order engine: creation from a cart and the role-scoped
// lifecycle transitions.
type OrderService interface {
	PlaceOrder(ctx context.Context, actor domain.Actor) (*PlaceOrderResult, error)
	UpdateOrder(ctx context.Context, actor domain.Actor, input UpdateOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, actor domain.Actor, input ListOrdersInput) (*ListOrdersResult, error)
	GetOrderLines(ctx context.Context, actor domain.Actor, orderID uint) (*OrderDetail, error)
}

// AddCartItemInput carries a cart addition. A nil Quantity means 1.
type AddCartItemInput struct {
	MenuItemID uint
	Quantity   *int
}

// CartService is the per-user cart ledger.
type CartService interface {
	AddItem(ctx context.Context, actor domain.Actor, input AddCartItemInput) (*domain.CartLine, error)
	ListItems(ctx context.Context, actor domain.Actor) ([]*domain.CartLine, error)
	Clear(ctx context.Context, actor domain.Actor) error
}
