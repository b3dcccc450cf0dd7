package domain

// Role is the operational classification an actor is authorized under. It is
// derived from group membership and never stored on the user.
type Role int

const (
	RoleCustomer Role = iota
	RoleDeliveryCrew
	RoleManager
)

// Group names as stored in the identity tables.
const (
	GroupManager      = "Manager"
	GroupDeliveryCrew = "Delivery Crew"
)

func (r Role) String() string {
	switch r {
	case RoleManager:
		return "manager"
	case RoleDeliveryCrew:
		return "delivery_crew"
	default:
		return "customer"
	}
}

// ResolveRole maps group memberships to a single role.
// Precedence: Manager > DeliveryCrew > Customer.
func ResolveRole(groups []string) Role {
	role := RoleCustomer
	for _, g := range groups {
		switch g {
		case GroupManager:
			return RoleManager
		case GroupDeliveryCrew:
			role = RoleDeliveryCrew
		}
	}
	return role
}

// Actor is the authenticated caller of an operation, resolved once per request.
type Actor struct {
	UserID   uint
	Username string
	Role     Role
	// Staff grants manager-equivalent catalog and group administration.
	Staff bool
}
