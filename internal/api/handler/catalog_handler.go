package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
	"github.com/littlelemon/restaurant-api/internal/core/ports"
)

// CatalogHandler exposes menu items and categories.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type menuItemRequest struct {
	Title      string          `json:"title" validate:"required,max=255"`
	Price      decimal.Decimal `json:"price" swaggertype:"string"`
	Featured   bool            `json:"featured"`
	CategoryID uint            `json:"category_id" validate:"required"`
}

type menuItemPatchRequest struct {
	Title      *string          `json:"title,omitempty" validate:"omitempty,max=255"`
	Price      *decimal.Decimal `json:"price,omitempty" swaggertype:"string"`
	Featured   *bool            `json:"featured,omitempty"`
	CategoryID *uint            `json:"category_id,omitempty"`
}

type categoryRequest struct {
	Slug  string `json:"slug" validate:"required,max=255"`
	Title string `json:"title" validate:"required,max=255"`
}

// ListMenuItems handles GET /api/menu-items.
//
// @Summary      List menu items
// @Tags         menu-items
// @Produce      json
// @Security     BearerAuth
// @Param        price     query     string  false  "Exact price"
// @Param        category  query     int     false  "Category id"
// @Param        featured  query     bool    false  "Featured only"
// @Param        search    query     string  false  "Title contains"
// @Param        ordering  query     string  false  "price or -price"
// @Param        page      query     int     false  "Page number (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  menuItemListResponse
// @Failure      400       {object}  map[string]string
// @Router       /api/menu-items [get]
func (h *CatalogHandler) ListMenuItems(c echo.Context) error {
	filter, err := menuItemFilter(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListMenuItems(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toMenuItemListResponse(result))
}

// GetMenuItem handles GET /api/menu-items/:id.
//
// @Summary      Get a menu item
// @Tags         menu-items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Menu item id"
// @Success      200  {object}  menuItemResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/menu-items/{id} [get]
func (h *CatalogHandler) GetMenuItem(c echo.Context) error {
	id, err := pathID(c, "id", domain.ErrMenuItemNotFound)
	if err != nil {
		return err
	}

	item, err := h.service.GetMenuItem(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toMenuItemResponse(item))
}

// CreateMenuItem handles POST /api/menu-items.
//
// @Summary      Create a menu item
// @Tags         menu-items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      menuItemRequest  true  "Menu item"
// @Success      201   {object}  menuItemResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/menu-items [post]
func (h *CatalogHandler) CreateMenuItem(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.service.CreateMenuItem(c.Request().Context(), actor, ports.MenuItemInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toMenuItemResponse(item))
}

// ReplaceMenuItem handles PUT /api/menu-items/:id.
//
// @Summary      Replace a menu item
// @Tags         menu-items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Menu item id"
// @Param        body  body      menuItemRequest  true  "Menu item"
// @Success      200   {object}  menuItemResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/menu-items/{id} [put]
func (h *CatalogHandler) ReplaceMenuItem(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", domain.ErrMenuItemNotFound)
	if err != nil {
		return err
	}

	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.service.UpdateMenuItem(c.Request().Context(), actor, id, ports.MenuItemPatch{
		Title:      &req.Title,
		Price:      &req.Price,
		Featured:   &req.Featured,
		CategoryID: &req.CategoryID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toMenuItemResponse(item))
}

// PatchMenuItem handles PATCH /api/menu-items/:id.
//
// @Summary      Partially update a menu item
// @Tags         menu-items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Menu item id"
// @Param        body  body      menuItemPatchRequest  true  "Fields to change"
// @Success      200   {object}  menuItemResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/menu-items/{id} [patch]
func (h *CatalogHandler) PatchMenuItem(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", domain.ErrMenuItemNotFound)
	if err != nil {
		return err
	}

	var req menuItemPatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.service.UpdateMenuItem(c.Request().Context(), actor, id, ports.MenuItemPatch(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toMenuItemResponse(item))
}

// DeleteMenuItem handles DELETE /api/menu-items/:id.
//
// @Summary      Delete a menu item
// @Tags         menu-items
// @Security     BearerAuth
// @Param        id   path  int  true  "Menu item id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/menu-items/{id} [delete]
func (h *CatalogHandler) DeleteMenuItem(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", domain.ErrMenuItemNotFound)
	if err != nil {
		return err
	}

	if err := h.service.DeleteMenuItem(c.Request().Context(), actor, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ListCategories handles GET /api/categories.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  categoryResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	cats, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]categoryResponse, 0, len(cats))
	for _, cat := range cats {
		resp = append(resp, toCategoryResponse(cat))
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateCategory handles POST /api/categories.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category"
// @Success      201   {object}  categoryResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cat, err := h.service.CreateCategory(c.Request().Context(), actor, req.Slug, req.Title)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toCategoryResponse(cat))
}

// menuItemFilter reads the listing query parameters.
func menuItemFilter(c echo.Context) (ports.ListMenuItemsFilter, error) {
	filter := ports.ListMenuItemsFilter{
		Search:   c.QueryParam("search"),
		Ordering: c.QueryParam("ordering"),
	}

	if raw := c.QueryParam("price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "price must be a decimal number")
		}
		filter.Price = &price
	}
	if raw := c.QueryParam("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "category must be an id")
		}
		filter.CategoryID = uint(id)
	}
	if raw := c.QueryParam("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "featured must be a boolean")
		}
		filter.Featured = &featured
	}

	var err error
	if filter.Page, err = queryInt(c, "page"); err != nil {
		return filter, err
	}
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		return filter, err
	}
	return filter, nil
}
