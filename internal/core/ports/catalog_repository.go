package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
)

// ListMenuItemsFilter carries the catalog listing parameters.
type ListMenuItemsFilter struct {
	Price      *decimal.Decimal // optional: exact price
	CategoryID uint             // optional
	Featured   *bool            // optional
	Search     string           // optional: partial match on title
	Ordering   string           // "", "price" or "-price"
	Page       int              // 1-based
	Limit      int
}

// CatalogRepository persists menu items and categories.
type CatalogRepository interface {
	FindMenuItem(ctx context.Context, id uint) (*domain.MenuItem, error)
	ListMenuItems(ctx context.Context, filter ListMenuItemsFilter) ([]*domain.MenuItem, int64, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id uint) error

	FindCategory(ctx context.Context, id uint) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) error
}
