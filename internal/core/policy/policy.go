// Package policy holds the pure authorization predicates consulted by the
// order engine and the HTTP layer. No predicate performs I/O or fails; callers
// turn a false result into the appropriate domain error.
package policy

import "github.com/littlelemon/restaurant-api/internal/core/domain"

// CanManage reports whether the actor may administer the catalog and groups.
// The staff flag grants the same rights as the Manager role.
func CanManage(a domain.Actor) bool {
	return a.Role == domain.RoleManager || a.Staff
}

// CanShop is a closed-world rule: only customers use the cart and place orders.
func CanShop(role domain.Role) bool {
	return role == domain.RoleCustomer
}

// CanViewOrder reports whether the actor may see order and its lines.
func CanViewOrder(a domain.Actor, order *domain.Order) bool {
	switch {
	case a.Role == domain.RoleManager:
		return true
	case a.Role == domain.RoleDeliveryCrew && order.IsAssignedTo(a.UserID):
		return true
	}
	return order.UserID == a.UserID
}

func CanAssignDeliveryCrew(role domain.Role) bool {
	return role == domain.RoleManager
}

// CanUpdateStatus reports whether the actor may change the status of order.
func CanUpdateStatus(a domain.Actor, order *domain.Order) bool {
	switch a.Role {
	case domain.RoleManager:
		return true
	case domain.RoleDeliveryCrew:
		return order.IsAssignedTo(a.UserID)
	}
	return false
}

// CanUpdateAnyStatus reports whether the role may attempt status updates at all,
// before any order is looked up.
func CanUpdateAnyStatus(role domain.Role) bool {
	return role == domain.RoleManager || role == domain.RoleDeliveryCrew
}
