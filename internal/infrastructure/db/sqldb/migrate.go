package sqldb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
)

// Admin describes the optional staff account created on first start.
type Admin struct {
	Username string
	Password string
	Email    string
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userRow{},
		&groupRow{},
		&membershipRow{},
		&categoryRow{},
		&menuItemRow{},
		&cartRow{},
		&orderRow{},
		&orderLineRow{},
	)
}

// Seed creates the role groups and, when configured, the staff admin. It is
// safe to run on every start.
func Seed(ctx context.Context, db *gorm.DB, admin Admin, log zerolog.Logger) error {
	tx := db.WithContext(ctx)

	for _, name := range []string{domain.GroupManager, domain.GroupDeliveryCrew} {
		g := groupRow{Name: name}
		if err := tx.Where(groupRow{Name: name}).FirstOrCreate(&g).Error; err != nil {
			return fmt.Errorf("seed group %q: %w", name, err)
		}
	}

	if admin.Username == "" || admin.Password == "" {
		return nil
	}

	var existing userRow
	err := tx.Where("username = ?", admin.Username).First(&existing).Error
	if err == nil {
		log.Debug().Str("username", admin.Username).Msg("admin user already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("seed admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	now := time.Now().UTC()
	row := userRow{
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: string(hash),
		Staff:        true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.Create(&row).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	log.Info().Str("username", admin.Username).Msg("admin user created")
	return nil
}
