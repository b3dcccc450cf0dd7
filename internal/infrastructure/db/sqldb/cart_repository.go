package sqldb

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
)

// CartRepository implements ports.CartRepository.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Add inserts a cart line. The (user, menu item) unique index turns a second
// line for the same item into domain.ErrCartLineExists.
func (r *CartRepository) Add(ctx context.Context, line *domain.CartLine) error {
	row := cartRow{
		UserID:     line.UserID,
		MenuItemID: line.MenuItemID,
		Quantity:   line.Quantity,
		UnitPrice:  line.UnitPrice,
		CreatedAt:  line.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		if isDuplicate(err) {
			return domain.ErrCartLineExists
		}
		if isForeignKeyViolation(err) {
			return domain.ErrMenuItemNotFound
		}
		return fmt.Errorf("add cart line: %w", err)
	}
	line.ID = row.ID
	line.CreatedAt = row.CreatedAt
	return nil
}

func (r *CartRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.CartLine, error) {
	var rows []cartRow
	err := r.db.WithContext(ctx).
		Preload("MenuItem").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	lines := make([]*domain.CartLine, 0, len(rows))
	for i := range rows {
		lines = append(lines, rows[i].toDomain())
	}
	return lines, nil
}

func (r *CartRepository) ClearByUser(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&cartRow{})
	return res.RowsAffected, res.Error
}
