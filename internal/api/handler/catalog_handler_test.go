package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
	"github.com/littlelemon/restaurant-api/internal/core/ports"
)

func TestCatalogHandler_ListMenuItems_Filters(t *testing.T) {
	e := newTestEcho()
	var got ports.ListMenuItemsFilter
	h := NewCatalogHandler(&stubCatalogService{
		listFn: func(_ context.Context, f ports.ListMenuItemsFilter) (*ports.ListMenuItemsResult, error) {
			got = f
			return &ports.ListMenuItemsResult{
				Items: []*domain.MenuItem{{ID: 1, Title: "Greek salad", Price: decimal.RequireFromString("12.5"), CategoryID: 2,
					Category: &domain.Category{ID: 2, Slug: "mains", Title: "Mains"}}},
				Total: 1, Page: 1, Limit: 20, TotalPages: 1,
			}, nil
		},
	})

	rec := call(e, h.ListMenuItems, &customer, http.MethodGet,
		"/api/menu-items?price=12.50&category=2&featured=true&search=salad&ordering=-price&page=1&limit=20", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Price == nil || !got.Price.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("price filter not parsed: %+v", got.Price)
	}
	if got.CategoryID != 2 || got.Featured == nil || !*got.Featured || got.Search != "salad" || got.Ordering != "-price" {
		t.Fatalf("unexpected filter %+v", got)
	}
	var resp menuItemListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Price != "12.50" || resp.Results[0].Category.Slug != "mains" {
		t.Fatalf("unexpected payload %+v", resp)
	}
}

func TestCatalogHandler_ListMenuItems_BadQuery(t *testing.T) {
	h := NewCatalogHandler(&stubCatalogService{
		listFn: func(context.Context, ports.ListMenuItemsFilter) (*ports.ListMenuItemsResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	for _, q := range []string{"price=cheap", "category=x", "featured=maybe", "limit=ten"} {
		rec := call(newTestEcho(), h.ListMenuItems, &customer, http.MethodGet, "/api/menu-items?"+q, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", q, rec.Code)
		}
	}
}

func TestCatalogHandler_CreateMenuItem(t *testing.T) {
	e := newTestEcho()
	var got ports.MenuItemInput
	h := NewCatalogHandler(&stubCatalogService{
		createFn: func(_ context.Context, actor domain.Actor, in ports.MenuItemInput) (*domain.MenuItem, error) {
			if actor.Role != domain.RoleManager {
				t.Fatalf("unexpected actor %+v", actor)
			}
			got = in
			return &domain.MenuItem{ID: 9, Title: in.Title, Price: in.Price, CategoryID: in.CategoryID, Featured: in.Featured}, nil
		},
	})

	rec := call(e, h.CreateMenuItem, &manager, http.MethodPost, "/api/menu-items",
		`{"title":"Lemon dessert","price":"6.25","featured":true,"category_id":3}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Title != "Lemon dessert" || !got.Price.Equal(decimal.RequireFromString("6.25")) || !got.Featured || got.CategoryID != 3 {
		t.Fatalf("unexpected input %+v", got)
	}
}

func TestCatalogHandler_CreateMenuItem_Validation(t *testing.T) {
	h := NewCatalogHandler(&stubCatalogService{
		createFn: func(context.Context, domain.Actor, ports.MenuItemInput) (*domain.MenuItem, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	rec := call(newTestEcho(), h.CreateMenuItem, &manager, http.MethodPost, "/api/menu-items", `{"price":"6.25","category_id":3}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCatalogHandler_CreateMenuItem_Forbidden(t *testing.T) {
	h := NewCatalogHandler(&stubCatalogService{
		createFn: func(context.Context, domain.Actor, ports.MenuItemInput) (*domain.MenuItem, error) {
			return nil, domain.ErrNotPermitted
		},
	})

	rec := call(newTestEcho(), h.CreateMenuItem, &customer, http.MethodPost, "/api/menu-items",
		`{"title":"x","price":"1","category_id":1}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestCatalogHandler_PatchMenuItem(t *testing.T) {
	var got ports.MenuItemPatch
	h := NewCatalogHandler(&stubCatalogService{
		updateFn: func(_ context.Context, _ domain.Actor, id uint, p ports.MenuItemPatch) (*domain.MenuItem, error) {
			if id != 4 {
				t.Fatalf("unexpected id %d", id)
			}
			got = p
			return &domain.MenuItem{ID: 4, Title: "Pasta", Price: decimal.RequireFromString("9"), Featured: true}, nil
		},
	})

	rec := call(newTestEcho(), h.PatchMenuItem, &manager, http.MethodPatch, "/api/menu-items/4", `{"featured":true}`, "id", "4")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Featured == nil || !*got.Featured || got.Title != nil || got.Price != nil || got.CategoryID != nil {
		t.Fatalf("patch must only carry featured: %+v", got)
	}
}

func TestCatalogHandler_ReplaceMenuItem(t *testing.T) {
	var got ports.MenuItemPatch
	h := NewCatalogHandler(&stubCatalogService{
		updateFn: func(_ context.Context, _ domain.Actor, _ uint, p ports.MenuItemPatch) (*domain.MenuItem, error) {
			got = p
			return &domain.MenuItem{ID: 4}, nil
		},
	})

	rec := call(newTestEcho(), h.ReplaceMenuItem, &manager, http.MethodPut, "/api/menu-items/4",
		`{"title":"Pasta","price":"9","category_id":1}`, "id", "4")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Title == nil || got.Price == nil || got.Featured == nil || got.CategoryID == nil || *got.Featured {
		t.Fatalf("replace must set every field: %+v", got)
	}
}

func TestCatalogHandler_DeleteMenuItem(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"missing", domain.ErrMenuItemNotFound, http.StatusNotFound},
		{"in use", domain.ErrMenuItemInUse, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCatalogHandler(&stubCatalogService{
				deleteFn: func(context.Context, domain.Actor, uint) error { return tt.err },
			})

			rec := call(newTestEcho(), h.DeleteMenuItem, &manager, http.MethodDelete, "/api/menu-items/4", "", "id", "4")
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
		})
	}
}

func TestCatalogHandler_Categories(t *testing.T) {
	h := NewCatalogHandler(&stubCatalogService{
		listCategoriesFn: func(context.Context) ([]*domain.Category, error) {
			return []*domain.Category{{ID: 1, Slug: "starters", Title: "Starters"}}, nil
		},
		createCategoryFn: func(_ context.Context, _ domain.Actor, slug, title string) (*domain.Category, error) {
			if slug == "starters" {
				return nil, domain.ErrCategoryExists
			}
			return &domain.Category{ID: 2, Slug: slug, Title: title}, nil
		},
	})

	rec := call(newTestEcho(), h.ListCategories, &customer, http.MethodGet, "/api/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var cats []categoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &cats); err != nil || len(cats) != 1 {
		t.Fatalf("unexpected categories %s", rec.Body.String())
	}

	rec = call(newTestEcho(), h.CreateCategory, &manager, http.MethodPost, "/api/categories", `{"slug":"desserts","title":"Desserts"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec = call(newTestEcho(), h.CreateCategory, &manager, http.MethodPost, "/api/categories", `{"slug":"starters","title":"Starters"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	rec = call(newTestEcho(), h.CreateCategory, &manager, http.MethodPost, "/api/categories", `{"slug":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
