package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/littlelemon/restaurant-api/internal/core/ports"
)

// CartHandler exposes the caller's cart.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

type addCartItemRequest struct {
	MenuItem uint `json:"menuitem" form:"menuitem" validate:"required"`
	// Quantity defaults to 1 when omitted.
	Quantity *int `json:"quantity" form:"quantity" validate:"omitempty,gte=1"`
}

// List handles GET /api/cart/menu-items.
//
// @Summary      List the caller's cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Failure      403  {object}  map[string]string
// @Router       /api/cart/menu-items [get]
func (h *CartHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	lines, err := h.service.ListItems(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCartResponse(lines))
}

// Add handles POST /api/cart/menu-items.
//
// @Summary      Add a menu item to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addCartItemRequest  true  "Menu item and quantity"
// @Success      201   {object}  cartLineResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/cart/menu-items [post]
func (h *CartHandler) Add(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	line, err := h.service.AddItem(c.Request().Context(), actor, ports.AddCartItemInput{
		MenuItemID: req.MenuItem,
		Quantity:   req.Quantity,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toCartLineResponse(line))
}

// Clear handles DELETE /api/cart/menu-items.
//
// @Summary      Empty the cart
// @Tags         cart
// @Security     BearerAuth
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /api/cart/menu-items [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Clear(c.Request().Context(), actor); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
