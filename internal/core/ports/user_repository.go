package ports

import (
	"context"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
)

// UserRepository defines account and group membership persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// Groups returns the names of every group the user belongs to.
	Groups(ctx context.Context, userID uint) ([]string, error)
	GroupMembers(ctx context.Context, group string) ([]*domain.User, error)
	IsGroupMember(ctx context.Context, userID uint, group string) (bool, error)
	AddToGroup(ctx context.Context, userID uint, group string) error
	RemoveFromGroup(ctx context.Context, userID uint, group string) error
}
