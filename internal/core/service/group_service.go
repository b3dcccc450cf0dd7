package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
	"github.com/littlelemon/restaurant-api/internal/core/policy"
	"github.com/littlelemon/restaurant-api/internal/core/ports"
)

// GroupService manages the Manager and Delivery Crew groups.
type GroupService struct {
	users ports.UserRepository
	cache RoleCache
	log   zerolog.Logger
}

// NewGroupService returns a GroupService. cache may be nil.
func NewGroupService(users ports.UserRepository, cache RoleCache, log zerolog.Logger) *GroupService {
	return &GroupService{users: users, cache: cache, log: log}
}

func (s *GroupService) ListMembers(ctx context.Context, actor domain.Actor, slug string) ([]*domain.User, error) {
	group, err := s.authorize(actor, slug)
	if err != nil {
		return nil, err
	}
	members, err := s.users.GroupMembers(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	return members, nil
}

// AddMember is idempotent: adding an existing member succeeds.
func (s *GroupService) AddMember(ctx context.Context, actor domain.Actor, slug, username string) error {
	group, user, err := s.resolve(ctx, actor, slug, username)
	if err != nil {
		return err
	}
	if err := s.users.AddToGroup(ctx, user.ID, group); err != nil {
		return fmt.Errorf("add group member: %w", err)
	}
	s.invalidate(ctx, user.ID)

	s.log.Info().Str("group", group).Str("username", user.Username).Str("by", actor.Username).Msg("group member added")
	return nil
}

// RemoveMember is idempotent: removing a non-member succeeds.
func (s *GroupService) RemoveMember(ctx context.Context, actor domain.Actor, slug, username string) error {
	group, user, err := s.resolve(ctx, actor, slug, username)
	if err != nil {
		return err
	}
	if err := s.users.RemoveFromGroup(ctx, user.ID, group); err != nil {
		return fmt.Errorf("remove group member: %w", err)
	}
	s.invalidate(ctx, user.ID)

	s.log.Info().Str("group", group).Str("username", user.Username).Str("by", actor.Username).Msg("group member removed")
	return nil
}

func (s *GroupService) authorize(actor domain.Actor, slug string) (string, error) {
	if !policy.CanManage(actor) {
		return "", domain.ErrNotPermitted
	}
	group, ok := domain.GroupBySlug(slug)
	if !ok {
		return "", domain.ErrUnknownGroup
	}
	return group, nil
}

func (s *GroupService) resolve(ctx context.Context, actor domain.Actor, slug, username string) (string, *domain.User, error) {
	group, err := s.authorize(actor, slug)
	if err != nil {
		return "", nil, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return "", nil, domain.ErrMissingUsername
	}
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	return group, user, nil
}

// invalidate drops the cached role so the next request re-reads membership.
func (s *GroupService) invalidate(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Uint("user_id", userID).Msg("role cache invalidation failed")
	}
}
