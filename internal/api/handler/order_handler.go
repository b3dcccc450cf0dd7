package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/littlelemon/restaurant-api/internal/api/metrics"
	"github.com/littlelemon/restaurant-api/internal/core/domain"
	"github.com/littlelemon/restaurant-api/internal/core/ports"
)

// OrderHandler exposes the order engine.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// updateOrderRequest documents the PATCH body. status accepts "0", "1",
// "true", "false" or the JSON equivalents; delivery_crew is a user id.
type updateOrderRequest struct {
	Status       any `json:"status,omitempty" swaggertype:"string"`
	DeliveryCrew any `json:"delivery_crew,omitempty" swaggertype:"integer"`
}

// List handles GET /api/orders.
//
// @Summary      List orders visible to the caller
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status filter (0/1/true/false)"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  orderListResponse
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Router       /api/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	result, err := h.service.ListOrders(c.Request().Context(), actor, ports.ListOrdersInput{
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrderListResponse(result))
}

// Create handles POST /api/orders.
//
// @Summary      Place an order from the caller's cart
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  placeOrderResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.PlaceOrder(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	metrics.OrdersPlacedTotal.Inc()
	return c.JSON(http.StatusCreated, placeOrderResponse{
		Order:     toOrderResponse(result.Order),
		LineCount: result.LineCount,
	})
}

// Get handles GET /api/orders/:id.
//
// @Summary      Get an order with its lines
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Order id"
// @Success      200  {object}  orderDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", domain.ErrOrderNotFound)
	if err != nil {
		return err
	}

	detail, err := h.service.GetOrderLines(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrderDetailResponse(detail))
}

// Update handles PATCH /api/orders/:id. Exactly one of status or
// delivery_crew must be present.
//
// @Summary      Update an order's status or delivery crew
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Order id"
// @Param        body  body      updateOrderRequest  true  "Exactly one field"
// @Success      200   {object}  orderResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/orders/{id} [patch]
func (h *OrderHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", domain.ErrOrderNotFound)
	if err != nil {
		return err
	}

	input, err := bindOrderUpdate(c)
	if err != nil {
		return err
	}
	input.OrderID = id

	order, err := h.service.UpdateOrder(c.Request().Context(), actor, input)
	if err != nil {
		return err
	}

	if input.Status != nil {
		metrics.OrderStatusUpdatesTotal.WithLabelValues(order.Status.String(), actor.Role.String()).Inc()
	} else {
		metrics.OrderCrewAssignmentsTotal.Inc()
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// bindOrderUpdate reads the update intents from a JSON or form body. Field
// values keep their raw form; the order engine decides what is valid.
func bindOrderUpdate(c echo.Context) (ports.UpdateOrderInput, error) {
	var in ports.UpdateOrderInput

	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEApplicationJSON) && ctype != "" {
		params, err := c.FormParams()
		if err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		if params.Has("status") {
			v := params.Get("status")
			in.Status = &v
		}
		if params.Has("delivery_crew") {
			crew := parseCrewID(params.Get("delivery_crew"))
			in.DeliveryCrewID = &crew
		}
		return in, nil
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return in, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if raw, ok := body["status"]; ok && !isNull(raw) {
		token, err := statusToken(raw)
		if err != nil {
			return in, err
		}
		in.Status = &token
	}
	if raw, ok := body["delivery_crew"]; ok && !isNull(raw) {
		crew := crewFromJSON(raw)
		in.DeliveryCrewID = &crew
	}
	return in, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// statusToken turns a JSON string, boolean or number into the textual token
// understood by domain.ParseStatusToken.
func statusToken(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", domain.ErrInvalidStatus
		}
		return s, nil
	}
	if len(raw) > 0 && (raw[0] == '{' || raw[0] == '[') {
		return "", domain.ErrInvalidStatus
	}
	return string(raw), nil
}

// crewFromJSON accepts a JSON number or numeric string. Anything else yields
// 0, which never names a delivery crew member.
func crewFromJSON(raw json.RawMessage) uint {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		return parseCrewID(s)
	}
	return parseCrewID(string(raw))
}

func parseCrewID(s string) uint {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
