package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
)

// RoleCache abstracts the resolved-role store (Redis).
type RoleCache interface {
	Get(ctx context.Context, userID uint) (domain.Role, bool, error)
	Set(ctx context.Context, userID uint, role domain.Role) error
	Invalidate(ctx context.Context, userID uint) error
}

type userReader interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	Groups(ctx context.Context, userID uint) ([]string, error)
}

// IdentityService turns an authenticated user id into an Actor.
type IdentityService struct {
	users userReader
	cache RoleCache
	log   zerolog.Logger
}

// NewIdentityService returns an IdentityService. cache may be nil.
func NewIdentityService(users userReader, cache RoleCache, log zerolog.Logger) *IdentityService {
	return &IdentityService{users: users, cache: cache, log: log}
}

// ResolveActor loads the user and derives its role from group membership.
// A token for a user that no longer exists is treated as unauthenticated.
func (s *IdentityService) ResolveActor(ctx context.Context, userID uint) (domain.Actor, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Actor{}, domain.ErrInvalidCredentials
		}
		return domain.Actor{}, fmt.Errorf("resolve actor: %w", err)
	}

	role, err := s.role(ctx, user.ID)
	if err != nil {
		return domain.Actor{}, err
	}

	return domain.Actor{
		UserID:   user.ID,
		Username: user.Username,
		Role:     role,
		Staff:    user.Staff,
	}, nil
}

func (s *IdentityService) role(ctx context.Context, userID uint) (domain.Role, error) {
	if s.cache != nil {
		role, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.log.Warn().Err(err).Uint("user_id", userID).Msg("role cache read failed, resolving from groups")
		} else if ok {
			return role, nil
		}
	}

	groups, err := s.users.Groups(ctx, userID)
	if err != nil {
		return domain.RoleCustomer, fmt.Errorf("resolve role: %w", err)
	}
	role := domain.ResolveRole(groups)

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, role); err != nil {
			s.log.Warn().Err(err).Uint("user_id", userID).Msg("role cache write failed")
		}
	}
	return role, nil
}
