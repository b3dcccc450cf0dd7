package sqldb

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
)

type userRow struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:150;uniqueIndex;not null"`
	Email        string `gorm:"size:254"`
	PasswordHash string `gorm:"not null"`
	Staff        bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

type groupRow struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:150;uniqueIndex;not null"`
}

func (groupRow) TableName() string { return "auth_groups" }

type membershipRow struct {
	UserID  uint      `gorm:"primaryKey"`
	User    *userRow  `gorm:"constraint:OnDelete:CASCADE"`
	GroupID uint      `gorm:"primaryKey"`
	Group   *groupRow `gorm:"constraint:OnDelete:CASCADE"`
}

func (membershipRow) TableName() string { return "user_groups" }

type categoryRow struct {
	ID    uint   `gorm:"primaryKey"`
	Slug  string `gorm:"size:255;uniqueIndex;not null"`
	Title string `gorm:"size:255;index;not null"`
}

func (categoryRow) TableName() string { return "categories" }

type menuItemRow struct {
	ID         uint            `gorm:"primaryKey"`
	Title      string          `gorm:"size:255;index;not null"`
	Price      decimal.Decimal `gorm:"type:decimal(6,2);index;not null"`
	Featured   bool            `gorm:"index;not null;default:false"`
	CategoryID uint            `gorm:"index;not null"`
	Category   *categoryRow    `gorm:"constraint:OnDelete:RESTRICT"`
}

func (menuItemRow) TableName() string { return "menu_items" }

type cartRow struct {
	ID         uint            `gorm:"primaryKey"`
	UserID     uint            `gorm:"uniqueIndex:idx_cart_user_item;not null"`
	User       *userRow        `gorm:"constraint:OnDelete:CASCADE"`
	MenuItemID uint            `gorm:"uniqueIndex:idx_cart_user_item;not null"`
	MenuItem   *menuItemRow    `gorm:"constraint:OnDelete:CASCADE"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	CreatedAt  time.Time
}

func (cartRow) TableName() string { return "cart_lines" }

type orderRow struct {
	ID             uint            `gorm:"primaryKey"`
	UserID         uint            `gorm:"index;not null"`
	User           *userRow        `gorm:"constraint:OnDelete:CASCADE"`
	DeliveryCrewID *uint           `gorm:"index"`
	DeliveryCrew   *userRow        `gorm:"foreignKey:DeliveryCrewID;constraint:OnDelete:SET NULL"`
	Status         int             `gorm:"index;not null;default:0"`
	Total          decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	CreatedAt      time.Time       `gorm:"index"`
}

func (orderRow) TableName() string { return "orders" }

type orderLineRow struct {
	ID         uint            `gorm:"primaryKey"`
	OrderID    uint            `gorm:"uniqueIndex:idx_order_line_item;not null"`
	Order      *orderRow       `gorm:"constraint:OnDelete:CASCADE"`
	MenuItemID uint            `gorm:"uniqueIndex:idx_order_line_item;not null"`
	MenuItem   *menuItemRow    `gorm:"constraint:OnDelete:RESTRICT"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	LineTotal  decimal.Decimal `gorm:"type:decimal(8,2);not null"`
}

func (orderLineRow) TableName() string { return "order_lines" }

// mapping

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Staff:        r.Staff,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (r *categoryRow) toDomain() *domain.Category {
	return &domain.Category{ID: r.ID, Slug: r.Slug, Title: r.Title}
}

func (r *menuItemRow) toDomain() *domain.MenuItem {
	item := &domain.MenuItem{
		ID:         r.ID,
		Title:      r.Title,
		Price:      r.Price,
		Featured:   r.Featured,
		CategoryID: r.CategoryID,
	}
	if r.Category != nil {
		item.Category = r.Category.toDomain()
	}
	return item
}

func menuItemFromDomain(item *domain.MenuItem) *menuItemRow {
	return &menuItemRow{
		ID:         item.ID,
		Title:      item.Title,
		Price:      item.Price,
		Featured:   item.Featured,
		CategoryID: item.CategoryID,
	}
}

func (r *cartRow) toDomain() *domain.CartLine {
	line := &domain.CartLine{
		ID:         r.ID,
		UserID:     r.UserID,
		MenuItemID: r.MenuItemID,
		Quantity:   r.Quantity,
		UnitPrice:  r.UnitPrice,
		CreatedAt:  r.CreatedAt,
	}
	if r.MenuItem != nil {
		line.MenuItem = r.MenuItem.toDomain()
	}
	return line
}

func (r *orderRow) toDomain() *domain.Order {
	return &domain.Order{
		ID:             r.ID,
		UserID:         r.UserID,
		DeliveryCrewID: r.DeliveryCrewID,
		Status:         domain.OrderStatus(r.Status),
		Total:          r.Total,
		CreatedAt:      r.CreatedAt,
	}
}

func (r *orderLineRow) toDomain() *domain.OrderLine {
	line := &domain.OrderLine{
		ID:         r.ID,
		OrderID:    r.OrderID,
		MenuItemID: r.MenuItemID,
		Quantity:   r.Quantity,
		UnitPrice:  r.UnitPrice,
		LineTotal:  r.LineTotal,
	}
	if r.MenuItem != nil {
		line.MenuItem = r.MenuItem.toDomain()
	}
	return line
}
