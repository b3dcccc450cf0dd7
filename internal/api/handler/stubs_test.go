package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/littlelemon/restaurant-api/internal/api/middleware"
	"github.com/littlelemon/restaurant-api/internal/core/domain"
	"github.com/littlelemon/restaurant-api/internal/core/ports"
)

var (
	manager  = domain.Actor{UserID: 1, Username: "boss", Role: domain.RoleManager}
	crew     = domain.Actor{UserID: 2, Username: "rider", Role: domain.RoleDeliveryCrew}
	customer = domain.Actor{UserID: 3, Username: "diner", Role: domain.RoleCustomer}
)

// newTestEcho mirrors the production error handling so tests observe final
// status codes.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = testErrorHandler(zerolog.Nop())
	return e
}

// testErrorHandler is a minimal copy of the api package mapping; the handler
// package cannot import api without a cycle.
func testErrorHandler(_ zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var code int
		var msg string
		switch {
		case asHTTPError(err, &code, &msg):
		case errors.Is(err, domain.ErrValidation):
			code, msg = http.StatusBadRequest, err.Error()
		case errors.Is(err, domain.ErrUnauthenticated):
			code, msg = http.StatusUnauthorized, err.Error()
		case errors.Is(err, domain.ErrForbidden):
			code, msg = http.StatusForbidden, err.Error()
		case errors.Is(err, domain.ErrNotFound):
			code, msg = http.StatusNotFound, err.Error()
		case errors.Is(err, domain.ErrConflict):
			code, msg = http.StatusConflict, err.Error()
		default:
			code, msg = http.StatusInternalServerError, "internal server error"
		}
		_ = c.JSON(code, map[string]string{"error": msg})
	}
}

func asHTTPError(err error, code *int, msg *string) bool {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return false
	}
	*code, *msg = he.Code, fmt.Sprint(he.Message)
	return true
}

// call runs h with the actor already resolved, the way the router's
// middleware chain leaves the context.
func call(e *echo.Echo, h echo.HandlerFunc, actor *domain.Actor, method, target, body string, params ...string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(middleware.ActorKey, *actor)
	}
	if len(params) > 0 {
		names := make([]string, 0, len(params)/2)
		values := make([]string, 0, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

// --- Order service ---

type stubOrderService struct {
	placeFn  func(ctx context.Context, actor domain.Actor) (*ports.PlaceOrderResult, error)
	updateFn func(ctx context.Context, actor domain.Actor, in ports.UpdateOrderInput) (*domain.Order, error)
	listFn   func(ctx context.Context, actor domain.Actor, in ports.ListOrdersInput) (*ports.ListOrdersResult, error)
	linesFn  func(ctx context.Context, actor domain.Actor, id uint) (*ports.OrderDetail, error)
}

func (s *stubOrderService) PlaceOrder(ctx context.Context, actor domain.Actor) (*ports.PlaceOrderResult, error) {
	return s.placeFn(ctx, actor)
}

func (s *stubOrderService) UpdateOrder(ctx context.Context, actor domain.Actor, in ports.UpdateOrderInput) (*domain.Order, error) {
	return s.updateFn(ctx, actor, in)
}

func (s *stubOrderService) ListOrders(ctx context.Context, actor domain.Actor, in ports.ListOrdersInput) (*ports.ListOrdersResult, error) {
	return s.listFn(ctx, actor, in)
}

func (s *stubOrderService) GetOrderLines(ctx context.Context, actor domain.Actor, id uint) (*ports.OrderDetail, error) {
	return s.linesFn(ctx, actor, id)
}

// --- Cart service ---

type stubCartService struct {
	addFn   func(ctx context.Context, actor domain.Actor, in ports.AddCartItemInput) (*domain.CartLine, error)
	listFn  func(ctx context.Context, actor domain.Actor) ([]*domain.CartLine, error)
	clearFn func(ctx context.Context, actor domain.Actor) error
}

func (s *stubCartService) AddItem(ctx context.Context, actor domain.Actor, in ports.AddCartItemInput) (*domain.CartLine, error) {
	return s.addFn(ctx, actor, in)
}

func (s *stubCartService) ListItems(ctx context.Context, actor domain.Actor) ([]*domain.CartLine, error) {
	return s.listFn(ctx, actor)
}

func (s *stubCartService) Clear(ctx context.Context, actor domain.Actor) error {
	return s.clearFn(ctx, actor)
}

// --- Catalog service ---

type stubCatalogService struct {
	listFn           func(ctx context.Context, f ports.ListMenuItemsFilter) (*ports.ListMenuItemsResult, error)
	getFn            func(ctx context.Context, id uint) (*domain.MenuItem, error)
	createFn         func(ctx context.Context, actor domain.Actor, in ports.MenuItemInput) (*domain.MenuItem, error)
	updateFn         func(ctx context.Context, actor domain.Actor, id uint, p ports.MenuItemPatch) (*domain.MenuItem, error)
	deleteFn         func(ctx context.Context, actor domain.Actor, id uint) error
	listCategoriesFn func(ctx context.Context) ([]*domain.Category, error)
	createCategoryFn func(ctx context.Context, actor domain.Actor, slug, title string) (*domain.Category, error)
}

func (s *stubCatalogService) ListMenuItems(ctx context.Context, f ports.ListMenuItemsFilter) (*ports.ListMenuItemsResult, error) {
	return s.listFn(ctx, f)
}

func (s *stubCatalogService) GetMenuItem(ctx context.Context, id uint) (*domain.MenuItem, error) {
	return s.getFn(ctx, id)
}

func (s *stubCatalogService) CreateMenuItem(ctx context.Context, actor domain.Actor, in ports.MenuItemInput) (*domain.MenuItem, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubCatalogService) UpdateMenuItem(ctx context.Context, actor domain.Actor, id uint, p ports.MenuItemPatch) (*domain.MenuItem, error) {
	return s.updateFn(ctx, actor, id, p)
}

func (s *stubCatalogService) DeleteMenuItem(ctx context.Context, actor domain.Actor, id uint) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubCatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.listCategoriesFn(ctx)
}

func (s *stubCatalogService) CreateCategory(ctx context.Context, actor domain.Actor, slug, title string) (*domain.Category, error) {
	return s.createCategoryFn(ctx, actor, slug, title)
}

// --- Group service ---

type stubGroupService struct {
	listFn   func(ctx context.Context, actor domain.Actor, group string) ([]*domain.User, error)
	addFn    func(ctx context.Context, actor domain.Actor, group, username string) error
	removeFn func(ctx context.Context, actor domain.Actor, group, username string) error
}

func (s *stubGroupService) ListMembers(ctx context.Context, actor domain.Actor, group string) ([]*domain.User, error) {
	return s.listFn(ctx, actor, group)
}

func (s *stubGroupService) AddMember(ctx context.Context, actor domain.Actor, group, username string) error {
	return s.addFn(ctx, actor, group, username)
}

func (s *stubGroupService) RemoveMember(ctx context.Context, actor domain.Actor, group, username string) error {
	return s.removeFn(ctx, actor, group, username)
}

// --- Auth service ---

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password, email string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	return s.registerFn(ctx, username, password, email)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}
