package sqldb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
	"github.com/littlelemon/restaurant-api/internal/core/ports"
)

// CatalogRepository implements ports.CatalogRepository.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) FindMenuItem(ctx context.Context, id uint) (*domain.MenuItem, error) {
	var row menuItemRow
	err := r.db.WithContext(ctx).Preload("Category").First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrMenuItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find menu item: %w", err)
	}
	return row.toDomain(), nil
}

func (r *CatalogRepository) ListMenuItems(ctx context.Context, f ports.ListMenuItemsFilter) ([]*domain.MenuItem, int64, error) {
	q := r.db.WithContext(ctx).Model(&menuItemRow{})
	if f.Price != nil {
		q = q.Where("price = ?", *f.Price)
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}
	if f.Search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count menu items: %w", err)
	}

	switch f.Ordering {
	case "price":
		q = q.Order("price ASC").Order("id ASC")
	case "-price":
		q = q.Order("price DESC").Order("id ASC")
	default:
		q = q.Order("id ASC")
	}

	var rows []menuItemRow
	err := q.Preload("Category").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list menu items: %w", err)
	}

	items := make([]*domain.MenuItem, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toDomain())
	}
	return items, total, nil
}

func (r *CatalogRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	row := menuItemFromDomain(item)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidCategory
		}
		return err
	}
	item.ID = row.ID
	return nil
}

func (r *CatalogRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	res := r.db.WithContext(ctx).Omit(clause.Associations).Save(menuItemFromDomain(item))
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return domain.ErrInvalidCategory
		}
		return res.Error
	}
	return nil
}

// DeleteMenuItem removes an item that no order references. Cart lines holding
// the item are removed with it.
func (r *CatalogRepository) DeleteMenuItem(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&orderLineRow{}).Where("menu_item_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return domain.ErrMenuItemInUse
		}
		if err := tx.Where("menu_item_id = ?", id).Delete(&cartRow{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&menuItemRow{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrMenuItemNotFound
		}
		return nil
	})
}

func (r *CatalogRepository) FindCategory(ctx context.Context, id uint) (*domain.Category, error) {
	var row categoryRow
	err := r.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return row.toDomain(), nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var rows []categoryRow
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Category, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	row := categoryRow{Slug: category.Slug, Title: category.Title}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicate(err) {
			return domain.ErrCategoryExists
		}
		return err
	}
	category.ID = row.ID
	return nil
}
