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

type menuItemFinder interface {
	FindMenuItem(ctx context.Context, id uint) (*domain.MenuItem, error)
}

// CartService is the per-user staging area for a future order.
type CartService struct {
	carts ports.CartRepository
	menu  menuItemFinder
	log   zerolog.Logger
}

func NewCartService(carts ports.CartRepository, menu menuItemFinder, log zerolog.Logger) *CartService {
	return &CartService{carts: carts, menu: menu, log: log}
}

// AddItem stages a menu item, capturing its current price.
func (s *CartService) AddItem(ctx context.Context, actor domain.Actor, in ports.AddCartItemInput) (*domain.CartLine, error) {
	if !policy.CanShop(actor.Role) {
		return nil, domain.ErrNotPermitted
	}

	quantity := 1
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	item, err := s.menu.FindMenuItem(ctx, in.MenuItemID)
	if err != nil {
		return nil, err
	}
	if !item.Price.IsPositive() {
		return nil, domain.ErrInvalidUnitPrice
	}

	line := &domain.CartLine{
		UserID:     actor.UserID,
		MenuItemID: item.ID,
		MenuItem:   item,
		Quantity:   quantity,
		UnitPrice:  item.Price,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.carts.Add(ctx, line); err != nil {
		return nil, err
	}

	s.log.Debug().Uint("user_id", actor.UserID).Uint("menu_item_id", item.ID).Int("quantity", quantity).Msg("cart line added")
	return line, nil
}

func (s *CartService) ListItems(ctx context.Context, actor domain.Actor) ([]*domain.CartLine, error) {
	if !policy.CanShop(actor.Role) {
		return nil, domain.ErrNotPermitted
	}
	lines, err := s.carts.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return lines, nil
}

// Clear empties the cart. Clearing an empty cart succeeds.
func (s *CartService) Clear(ctx context.Context, actor domain.Actor) error {
	if !policy.CanShop(actor.Role) {
		return domain.ErrNotPermitted
	}
	if _, err := s.carts.ClearByUser(ctx, actor.UserID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
