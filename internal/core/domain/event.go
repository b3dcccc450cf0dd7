package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderEventKind names an audited order transition.
type OrderEventKind string

const (
	EventOrderCreated  OrderEventKind = "created"
	EventStatusChanged OrderEventKind = "status_changed"
	EventCrewAssigned  OrderEventKind = "crew_assigned"
)

// OrderEvent is an audit record of a successful order transition.
type OrderEvent struct {
	OrderID    uint
	Kind       OrderEventKind
	ActorID    uint
	ActorRole  Role
	FromStatus *OrderStatus
	ToStatus   *OrderStatus
	CrewID     *uint
	Total      decimal.Decimal
	LineCount  int
	At         time.Time
}
