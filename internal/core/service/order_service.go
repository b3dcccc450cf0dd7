package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
	"github.com/littlelemon/restaurant-api/internal/core/policy"
	"github.com/littlelemon/restaurant-api/internal/core/ports"
)

// EventPublisher hands order events to the audit trail. Publish must not block
// the request; delivery failures are the publisher's concern.
type EventPublisher interface {
	Publish(event domain.OrderEvent)
}

// OrderService is the order engine.
type OrderService struct {
	uow    ports.UnitOfWork
	orders ports.OrderRepository
	users  ports.UserRepository
	events EventPublisher
	log    zerolog.Logger
	now    func() time.Time
}

// NewOrderService returns an order engine. events may be nil to disable auditing.
func NewOrderService(
	uow ports.UnitOfWork,
	orders ports.OrderRepository,
	users ports.UserRepository,
	events EventPublisher,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		uow:    uow,
		orders: orders,
		users:  users,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// PlaceOrder converts the actor's cart into an order. Reading the cart, writing
// the order and its lines, and clearing the cart happen in one unit of work.
func (s *OrderService) PlaceOrder(ctx context.Context, actor domain.Actor) (*ports.PlaceOrderResult, error) {
	if !policy.CanShop(actor.Role) {
		return nil, domain.ErrNotPermitted
	}

	var result *ports.PlaceOrderResult
	err := s.uow.Do(ctx, func(r ports.Repositories) error {
		cart, err := r.Carts.ListByUser(ctx, actor.UserID)
		if err != nil {
			return fmt.Errorf("place order: read cart: %w", err)
		}
		if len(cart) == 0 {
			return domain.ErrEmptyCart
		}

		order := &domain.Order{
			UserID:    actor.UserID,
			Status:    domain.StatusPending,
			Total:     domain.CartTotal(cart),
			CreatedAt: s.now().UTC(),
		}
		if err := r.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("place order: create order: %w", err)
		}

		if err := r.Orders.CreateLines(ctx, domain.NewOrderLines(order.ID, cart)); err != nil {
			s.log.Warn().Err(err).Uint("user_id", actor.UserID).Msg("order lines rejected, rolling back")
			return domain.ErrOrderLinesRejected
		}

		cleared, err := r.Carts.ClearByUser(ctx, actor.UserID)
		if err != nil {
			return fmt.Errorf("place order: clear cart: %w", err)
		}
		// Another placement consumed the same cart first.
		if cleared != int64(len(cart)) {
			return domain.ErrEmptyCart
		}

		result = &ports.PlaceOrderResult{Order: order, LineCount: len(cart)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Uint("order_id", result.Order.ID).
		Uint("user_id", actor.UserID).
		Int("lines", result.LineCount).
		Str("total", result.Order.Total.StringFixed(2)).
		Msg("order placed")

	to := result.Order.Status
	s.publish(domain.OrderEvent{
		OrderID:   result.Order.ID,
		Kind:      domain.EventOrderCreated,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
		ToStatus:  &to,
		Total:     result.Order.Total,
		LineCount: result.LineCount,
		At:        result.Order.CreatedAt,
	})
	return result, nil
}

// UpdateOrder applies exactly one of the status or delivery-crew intents.
func (s *OrderService) UpdateOrder(ctx context.Context, actor domain.Actor, in ports.UpdateOrderInput) (*domain.Order, error) {
	switch {
	case in.Status != nil && in.DeliveryCrewID != nil:
		return nil, domain.ErrAmbiguousUpdate
	case in.Status != nil:
		return s.updateStatus(ctx, actor, in.OrderID, *in.Status)
	case in.DeliveryCrewID != nil:
		return s.assignDeliveryCrew(ctx, actor, in.OrderID, *in.DeliveryCrewID)
	}
	return nil, domain.ErrNoUpdateField
}

func (s *OrderService) updateStatus(ctx context.Context, actor domain.Actor, orderID uint, token string) (*domain.Order, error) {
	if !policy.CanUpdateAnyStatus(actor.Role) {
		return nil, domain.ErrNotPermitted
	}
	next, err := domain.ParseStatusToken(token)
	if err != nil {
		return nil, err
	}

	// Delivery crew only ever finds orders assigned to them.
	order, err := s.orders.FindByID(ctx, orderID, scopeFor(actor))
	if err != nil {
		return nil, err
	}
	if !policy.CanUpdateStatus(actor, order) {
		return nil, domain.ErrOrderNotFound
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}

	prev := order.Status
	if err := s.orders.UpdateStatus(ctx, order.ID, next); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	order.Status = next

	s.log.Info().
		Uint("order_id", order.ID).
		Str("from", prev.String()).
		Str("to", next.String()).
		Str("role", actor.Role.String()).
		Msg("order status updated")

	s.publish(domain.OrderEvent{
		OrderID:    order.ID,
		Kind:       domain.EventStatusChanged,
		ActorID:    actor.UserID,
		ActorRole:  actor.Role,
		FromStatus: &prev,
		ToStatus:   &next,
		At:         s.now().UTC(),
	})
	return order, nil
}

func (s *OrderService) assignDeliveryCrew(ctx context.Context, actor domain.Actor, orderID, crewID uint) (*domain.Order, error) {
	if !policy.CanAssignDeliveryCrew(actor.Role) {
		return nil, domain.ErrNotPermitted
	}
	if crewID == 0 {
		return nil, domain.ErrInvalidDeliveryCrew
	}

	isCrew, err := s.users.IsGroupMember(ctx, crewID, domain.GroupDeliveryCrew)
	if err != nil {
		return nil, fmt.Errorf("assign delivery crew: %w", err)
	}
	if !isCrew {
		return nil, domain.ErrInvalidDeliveryCrew
	}

	order, err := s.orders.FindByID(ctx, orderID, ports.OrderScope{})
	if err != nil {
		return nil, err
	}
	if err := s.orders.AssignDeliveryCrew(ctx, order.ID, crewID); err != nil {
		return nil, fmt.Errorf("assign delivery crew: %w", err)
	}
	order.DeliveryCrewID = &crewID

	s.log.Info().Uint("order_id", order.ID).Uint("delivery_crew_id", crewID).Msg("delivery crew assigned")

	s.publish(domain.OrderEvent{
		OrderID:   order.ID,
		Kind:      domain.EventCrewAssigned,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
		CrewID:    &crewID,
		At:        s.now().UTC(),
	})
	return order, nil
}

// ListOrders returns the page of orders visible to the actor: everything for a
// manager, assigned orders for delivery crew, own orders for customers.
func (s *OrderService) ListOrders(ctx context.Context, actor domain.Actor, in ports.ListOrdersInput) (*ports.ListOrdersResult, error) {
	page, limit := normalizePage(in.Page, in.Limit)
	filter := ports.ListOrdersFilter{
		Scope: scopeFor(actor),
		Page:  page,
		Limit: limit,
	}
	if in.Status != "" {
		status, err := domain.ParseStatusToken(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}

	items, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return &ports.ListOrdersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// GetOrderLines returns an order with its lines. Orders the actor may not view
// are reported as not found.
func (s *OrderService) GetOrderLines(ctx context.Context, actor domain.Actor, orderID uint) (*ports.OrderDetail, error) {
	order, err := s.orders.FindByID(ctx, orderID, ports.OrderScope{})
	if err != nil {
		return nil, err
	}
	if !policy.CanViewOrder(actor, order) {
		return nil, domain.ErrOrderNotFound
	}

	lines, err := s.orders.Lines(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("get order lines: %w", err)
	}
	return &ports.OrderDetail{Order: order, Lines: lines}, nil
}

func (s *OrderService) publish(e domain.OrderEvent) {
	if s.events == nil {
		return
	}
	s.events.Publish(e)
}

// scopeFor derives the order visibility filter from the actor's role.
func scopeFor(actor domain.Actor) ports.OrderScope {
	switch actor.Role {
	case domain.RoleManager:
		return ports.OrderScope{}
	case domain.RoleDeliveryCrew:
		return ports.OrderScope{DeliveryCrewID: actor.UserID}
	default:
		return ports.OrderScope{UserID: actor.UserID}
	}
}
