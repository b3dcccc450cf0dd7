package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
)

// MenuItemInput carries a full menu item definition.
type MenuItemInput struct {
	Title      string
	Price      decimal.Decimal
	Featured   bool
	CategoryID uint
}

// MenuItemPatch carries a partial update; nil fields are left unchanged.
type MenuItemPatch struct {
	Title      *string
	Price      *decimal.Decimal
	Featured   *bool
	CategoryID *uint
}

// ListMenuItemsResult is returned by ListMenuItems.
type ListMenuItemsResult struct {
	Items      []*domain.MenuItem
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CatalogService exposes the menu. Reads are open to every authenticated
// actor; writes require manager rights.
type CatalogService interface {
	ListMenuItems(ctx context.Context, filter ListMenuItemsFilter) (*ListMenuItemsResult, error)
	GetMenuItem(ctx context.Context, id uint) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, actor domain.Actor, input MenuItemInput) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, actor domain.Actor, id uint, patch MenuItemPatch) (*domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, actor domain.Actor, id uint) error

	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, actor domain.Actor, slug, title string) (*domain.Category, error)
}
