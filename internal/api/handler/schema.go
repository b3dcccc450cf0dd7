package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
	"github.com/littlelemon/restaurant-api/internal/core/ports"
)

// --- Shared ---

type messageResponse struct {
	Message string `json:"message"`
}

type pageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// --- Catalog ---

type categoryResponse struct {
	ID    uint   `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type menuItemResponse struct {
	ID       uint              `json:"id"`
	Title    string            `json:"title"`
	Price    string            `json:"price"`
	Featured bool              `json:"featured"`
	Category *categoryResponse `json:"category,omitempty"`
	// CategoryID is always set, even when the category was not loaded.
	CategoryID uint `json:"category_id"`
}

type menuItemListResponse struct {
	Results []menuItemResponse `json:"results"`
	pageMeta
}

func toCategoryResponse(c *domain.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Slug: c.Slug, Title: c.Title}
}

func toMenuItemResponse(m *domain.MenuItem) menuItemResponse {
	resp := menuItemResponse{
		ID:         m.ID,
		Title:      m.Title,
		Price:      money(m.Price),
		Featured:   m.Featured,
		CategoryID: m.CategoryID,
	}
	if m.Category != nil {
		cat := toCategoryResponse(m.Category)
		resp.Category = &cat
	}
	return resp
}

func toMenuItemListResponse(r *ports.ListMenuItemsResult) menuItemListResponse {
	items := make([]menuItemResponse, 0, len(r.Items))
	for _, m := range r.Items {
		items = append(items, toMenuItemResponse(m))
	}
	return menuItemListResponse{
		Results:  items,
		pageMeta: pageMeta{Total: r.Total, Page: r.Page, Limit: r.Limit, TotalPages: r.TotalPages},
	}
}

// --- Cart ---

type cartLineResponse struct {
	ID        uint   `json:"id"`
	User      uint   `json:"user"`
	MenuItem  uint   `json:"menuitem"`
	Title     string `json:"title,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Price     string `json:"price"`
}

type cartResponse struct {
	Items []cartLineResponse `json:"items"`
	Total string             `json:"total"`
}

func toCartLineResponse(l *domain.CartLine) cartLineResponse {
	resp := cartLineResponse{
		ID:        l.ID,
		User:      l.UserID,
		MenuItem:  l.MenuItemID,
		Quantity:  l.Quantity,
		UnitPrice: money(l.UnitPrice),
		Price:     money(l.Price()),
	}
	if l.MenuItem != nil {
		resp.Title = l.MenuItem.Title
	}
	return resp
}

func toCartResponse(lines []*domain.CartLine) cartResponse {
	items := make([]cartLineResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, toCartLineResponse(l))
	}
	return cartResponse{Items: items, Total: money(domain.CartTotal(lines))}
}

// --- Orders ---

type orderResponse struct {
	ID           uint   `json:"id"`
	User         uint   `json:"user"`
	DeliveryCrew *uint  `json:"delivery_crew"`
	Status       int    `json:"status"`
	StatusLabel  string `json:"status_label"`
	Total        string `json:"total"`
	Date         string `json:"date"`
}

type placeOrderResponse struct {
	Order     orderResponse `json:"order"`
	LineCount int           `json:"line_count"`
}

type orderListResponse struct {
	Results []orderResponse `json:"results"`
	pageMeta
}

type orderLineResponse struct {
	MenuItem  uint   `json:"menuitem"`
	Title     string `json:"title,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Price     string `json:"price"`
}

type orderDetailResponse struct {
	Order orderResponse       `json:"order"`
	Items []orderLineResponse `json:"items"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:           o.ID,
		User:         o.UserID,
		DeliveryCrew: o.DeliveryCrewID,
		Status:       int(o.Status),
		StatusLabel:  o.Status.String(),
		Total:        money(o.Total),
		Date:         o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toOrderListResponse(r *ports.ListOrdersResult) orderListResponse {
	items := make([]orderResponse, 0, len(r.Items))
	for _, o := range r.Items {
		items = append(items, toOrderResponse(o))
	}
	return orderListResponse{
		Results:  items,
		pageMeta: pageMeta{Total: r.Total, Page: r.Page, Limit: r.Limit, TotalPages: r.TotalPages},
	}
}

func toOrderDetailResponse(d *ports.OrderDetail) orderDetailResponse {
	items := make([]orderLineResponse, 0, len(d.Lines))
	for _, l := range d.Lines {
		line := orderLineResponse{
			MenuItem:  l.MenuItemID,
			Quantity:  l.Quantity,
			UnitPrice: money(l.UnitPrice),
			Price:     money(l.LineTotal),
		}
		if l.MenuItem != nil {
			line.Title = l.MenuItem.Title
		}
		items = append(items, line)
	}
	return orderDetailResponse{Order: toOrderResponse(d.Order), Items: items}
}

// --- Users ---

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}
