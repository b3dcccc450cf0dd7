package domain

import "github.com/shopspring/decimal"

// Category groups menu items.
type Category struct {
	ID    uint   `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// MenuItem is a sellable dish. Its price is the source of every cart snapshot.
type MenuItem struct {
	ID         uint            `json:"id"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	Featured   bool            `json:"featured"`
	CategoryID uint            `json:"category_id"`
	Category   *Category       `json:"category,omitempty"`
}
