package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one menu item staged by a user before ordering. UnitPrice is
// captured when the line is added and never refreshed.
type CartLine struct {
	ID         uint
	UserID     uint
	MenuItemID uint
	MenuItem   *MenuItem
	Quantity   int
	UnitPrice  decimal.Decimal
	CreatedAt  time.Time
}

// Price is always derived, never stored.
func (l *CartLine) Price() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartTotal sums the snapshot prices of lines.
func CartTotal(lines []*CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price())
	}
	return total
}
