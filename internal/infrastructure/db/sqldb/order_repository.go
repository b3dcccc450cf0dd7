package sqldb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
	"github.com/littlelemon/restaurant-api/internal/core/ports"
)

// OrderRepository implements ports.OrderRepository.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	row := orderRow{
		UserID:         order.UserID,
		DeliveryCrewID: order.DeliveryCrewID,
		Status:         int(order.Status),
		Total:          order.Total,
		CreatedAt:      order.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return err
	}
	order.ID = row.ID
	order.CreatedAt = row.CreatedAt
	return nil
}

func (r *OrderRepository) CreateLines(ctx context.Context, lines []*domain.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	rows := make([]orderLineRow, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, orderLineRow{
			OrderID:    l.OrderID,
			MenuItemID: l.MenuItemID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			LineTotal:  l.LineTotal,
		})
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return err
	}
	for i := range rows {
		lines[i].ID = rows[i].ID
	}
	return nil
}

// scoped applies the non-zero scope fields to q.
func scoped(q *gorm.DB, scope ports.OrderScope) *gorm.DB {
	if scope.UserID != 0 {
		q = q.Where("user_id = ?", scope.UserID)
	}
	if scope.DeliveryCrewID != 0 {
		q = q.Where("delivery_crew_id = ?", scope.DeliveryCrewID)
	}
	return q
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint, scope ports.OrderScope) (*domain.Order, error) {
	var row orderRow
	err := scoped(r.db.WithContext(ctx), scope).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return row.toDomain(), nil
}

func (r *OrderRepository) List(ctx context.Context, f ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	q := scoped(r.db.WithContext(ctx).Model(&orderRow{}), f.Scope)
	if f.Status != nil {
		q = q.Where("status = ?", int(*f.Status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	var rows []orderRow
	err := q.Order("id ASC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]*domain.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, rows[i].toDomain())
	}
	return orders, total, nil
}

func (r *OrderRepository) Lines(ctx context.Context, orderID uint) ([]*domain.OrderLine, error) {
	var rows []orderLineRow
	err := r.db.WithContext(ctx).
		Preload("MenuItem").
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	lines := make([]*domain.OrderLine, 0, len(rows))
	for i := range rows {
		lines = append(lines, rows[i].toDomain())
	}
	return lines, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&orderRow{}).Where("id = ?", id).Update("status", int(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) AssignDeliveryCrew(ctx context.Context, id uint, crewID uint) error {
	res := r.db.WithContext(ctx).Model(&orderRow{}).Where("id = ?", id).Update("delivery_crew_id", crewID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
