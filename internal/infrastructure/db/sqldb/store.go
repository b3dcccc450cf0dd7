// Package sqldb is the relational store: users and groups, the catalog, carts
// and orders. It runs on Postgres in production and SQLite for development
// and tests.
package sqldb

import (
	"context"

	"gorm.io/gorm"

	"github.com/littlelemon/restaurant-api/internal/core/ports"
)

// Store implements ports.UnitOfWork on top of a gorm transaction.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Do runs fn inside one transaction. Repositories handed to fn are bound to it;
// any error rolls every write back.
func (s *Store) Do(ctx context.Context, fn func(r ports.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ports.Repositories{
			Carts:  NewCartRepository(tx),
			Orders: NewOrderRepository(tx),
		})
	})
}
