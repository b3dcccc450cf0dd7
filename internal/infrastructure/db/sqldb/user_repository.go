package sqldb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
)

// UserRepository implements ports.UserRepository over the users, auth_groups
// and user_groups tables.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := userRow{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Staff:        user.Staff,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var row userRow
	return r.first(r.db.WithContext(ctx).Where("id = ?", id), &row)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var row userRow
	return r.first(r.db.WithContext(ctx).Where("username = ?", username), &row)
}

func (r *UserRepository) first(q *gorm.DB, row *userRow) (*domain.User, error) {
	err := q.First(row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) Groups(ctx context.Context, userID uint) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&groupRow{}).
		Joins("JOIN user_groups ON user_groups.group_id = auth_groups.id").
		Where("user_groups.user_id = ?", userID).
		Order("auth_groups.name ASC").
		Pluck("auth_groups.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *UserRepository) GroupMembers(ctx context.Context, group string) ([]*domain.User, error) {
	var rows []userRow
	err := r.db.WithContext(ctx).
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Joins("JOIN auth_groups ON auth_groups.id = user_groups.group_id").
		Where("auth_groups.name = ?", group).
		Order("users.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) IsGroupMember(ctx context.Context, userID uint, group string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&membershipRow{}).
		Joins("JOIN auth_groups ON auth_groups.id = user_groups.group_id").
		Where("user_groups.user_id = ? AND auth_groups.name = ?", userID, group).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AddToGroup is idempotent.
func (r *UserRepository) AddToGroup(ctx context.Context, userID uint, group string) error {
	groupID, err := r.groupID(ctx, group)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&membershipRow{UserID: userID, GroupID: groupID}).Error
}

// RemoveFromGroup is idempotent.
func (r *UserRepository) RemoveFromGroup(ctx context.Context, userID uint, group string) error {
	groupID, err := r.groupID(ctx, group)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		Delete(&membershipRow{}).Error
}

func (r *UserRepository) groupID(ctx context.Context, name string) (uint, error) {
	var row groupRow
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, domain.ErrUnknownGroup
	}
	if err != nil {
		return 0, fmt.Errorf("find group: %w", err)
	}
	return row.ID, nil
}
