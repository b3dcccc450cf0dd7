package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order. Stored as 0/1 so
// older clients that send booleans keep working; more states can be appended.
type OrderStatus int

const (
	StatusPending   OrderStatus = 0
	StatusCompleted OrderStatus = 1
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusCompleted},
	StatusCompleted: {StatusPending},
}

// CanTransitionTo reports whether a transition from current status to next is
// valid. Rewriting the current status is always allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return s.Valid()
	}
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

func (s OrderStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ParseStatusToken accepts "0", "1", "true" and "false", case-insensitively.
func ParseStatusToken(token string) (OrderStatus, error) {
	switch strings.ToLower(token) {
	case "0", "false":
		return StatusPending, nil
	case "1", "true":
		return StatusCompleted, nil
	}
	return 0, ErrInvalidStatus
}

// Order is created once from a cart snapshot. Only Status and DeliveryCrewID
// change afterwards.
type Order struct {
	ID             uint
	UserID         uint
	DeliveryCrewID *uint
	Status         OrderStatus
	Total          decimal.Decimal
	CreatedAt      time.Time
}

// IsAssignedTo reports whether userID is the order's delivery crew.
func (o *Order) IsAssignedTo(userID uint) bool {
	return o.DeliveryCrewID != nil && *o.DeliveryCrewID == userID
}

// OrderLine is a frozen copy of a cart line.
type OrderLine struct {
	ID         uint
	OrderID    uint
	MenuItemID uint
	MenuItem   *MenuItem
	Quantity   int
	UnitPrice  decimal.Decimal
	LineTotal  decimal.Decimal
}

// NewOrderLines copies cart lines into order lines for orderID.
func NewOrderLines(orderID uint, cart []*CartLine) []*OrderLine {
	lines := make([]*OrderLine, 0, len(cart))
	for _, c := range cart {
		lines = append(lines, &OrderLine{
			OrderID:    orderID,
			MenuItemID: c.MenuItemID,
			Quantity:   c.Quantity,
			UnitPrice:  c.UnitPrice,
			LineTotal:  c.Price(),
		})
	}
	return lines
}
