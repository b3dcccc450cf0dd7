package ports

import (
	"context"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

// IdentityService resolves the caller of a request into an Actor.
type IdentityService interface {
	ResolveActor(ctx context.Context, userID uint) (domain.Actor, error)
}

// GroupService manages membership of the Manager and Delivery Crew groups.
// Groups are addressed by their URL slug ("manager", "delivery-crew").
type GroupService interface {
	ListMembers(ctx context.Context, actor domain.Actor, group string) ([]*domain.User, error)
	AddMember(ctx context.Context, actor domain.Actor, group, username string) error
	RemoveMember(ctx context.Context, actor domain.Actor, group, username string) error
}
