package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
	"github.com/littlelemon/restaurant-api/internal/core/policy"
	"github.com/littlelemon/restaurant-api/internal/core/ports"
)

// CatalogService exposes the menu and its categories.
type CatalogService struct {
	repo ports.CatalogRepository
	log  zerolog.Logger
}

func NewCatalogService(repo ports.CatalogRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

func (s *CatalogService) ListMenuItems(ctx context.Context, filter ports.ListMenuItemsFilter) (*ports.ListMenuItemsResult, error) {
	switch filter.Ordering {
	case "", "price", "-price":
	default:
		return nil, domain.ErrInvalidOrdering
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.repo.ListMenuItems(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return &ports.ListMenuItemsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *CatalogService) GetMenuItem(ctx context.Context, id uint) (*domain.MenuItem, error) {
	return s.repo.FindMenuItem(ctx, id)
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, actor domain.Actor, in ports.MenuItemInput) (*domain.MenuItem, error) {
	if !policy.CanManage(actor) {
		return nil, domain.ErrNotPermitted
	}

	item := &domain.MenuItem{
		Title:      strings.TrimSpace(in.Title),
		Price:      in.Price,
		Featured:   in.Featured,
		CategoryID: in.CategoryID,
	}
	if err := s.validate(ctx, item); err != nil {
		return nil, err
	}
	if err := s.repo.CreateMenuItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}

	s.log.Info().Uint("menu_item_id", item.ID).Str("title", item.Title).Msg("menu item created")
	return item, nil
}

// UpdateMenuItem applies the non-nil fields of patch. Existing cart and order
// lines keep the price they captured.
func (s *CatalogService) UpdateMenuItem(ctx context.Context, actor domain.Actor, id uint, patch ports.MenuItemPatch) (*domain.MenuItem, error) {
	if !policy.CanManage(actor) {
		return nil, domain.ErrNotPermitted
	}

	item, err := s.repo.FindMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		item.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Featured != nil {
		item.Featured = *patch.Featured
	}
	if patch.CategoryID != nil {
		item.CategoryID = *patch.CategoryID
		item.Category = nil
	}

	if err := s.validate(ctx, item); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateMenuItem(ctx, item); err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}
	return item, nil
}

func (s *CatalogService) DeleteMenuItem(ctx context.Context, actor domain.Actor, id uint) error {
	if !policy.CanManage(actor) {
		return domain.ErrNotPermitted
	}
	if _, err := s.repo.FindMenuItem(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteMenuItem(ctx, id); err != nil {
		if errors.Is(err, domain.ErrMenuItemInUse) {
			return err
		}
		return fmt.Errorf("delete menu item: %w", err)
	}

	s.log.Info().Uint("menu_item_id", id).Msg("menu item deleted")
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, actor domain.Actor, slug, title string) (*domain.Category, error) {
	if !policy.CanManage(actor) {
		return nil, domain.ErrNotPermitted
	}

	category := &domain.Category{
		Slug:  strings.TrimSpace(slug),
		Title: strings.TrimSpace(title),
	}
	if category.Slug == "" || category.Title == "" {
		return nil, domain.ErrInvalidCategory
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, domain.ErrCategoryExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// validate checks the item fields and resolves its category.
func (s *CatalogService) validate(ctx context.Context, item *domain.MenuItem) error {
	if item.Title == "" || !item.Price.IsPositive() {
		return domain.ErrInvalidMenuItem
	}
	category, err := s.repo.FindCategory(ctx, item.CategoryID)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return domain.ErrInvalidCategory
		}
		return fmt.Errorf("resolve category: %w", err)
	}
	item.Category = category
	return nil
}
