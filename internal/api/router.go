package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/littlelemon/restaurant-api/docs"
	"github.com/littlelemon/restaurant-api/internal/api/handler"
	"github.com/littlelemon/restaurant-api/internal/api/middleware"
	"github.com/littlelemon/restaurant-api/internal/core/domain"
	"github.com/littlelemon/restaurant-api/internal/core/ports"
)

// Dependencies are the services and probes the router is built from.
// Health checks with a nil func are skipped.
type Dependencies struct {
	Auth     ports.AuthService
	Identity ports.IdentityService
	Groups   ports.GroupService
	Catalog  ports.CatalogService
	Carts    ports.CartService
	Orders   ports.OrderService

	HealthChecks map[string]func(ctx context.Context) error

	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddleware("littlelemon"))

	// --- Health probes, metrics and docs (no auth required) ---
	health := handler.NewHealthHandler()
	for name, ping := range deps.HealthChecks {
		health.Register(name, ping)
	}
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	api := e.Group("/api", middleware.Auth(deps.JWTSecret), middleware.Actor(deps.Identity))

	catalog := handler.NewCatalogHandler(deps.Catalog)
	api.GET("/menu-items", catalog.ListMenuItems)
	api.POST("/menu-items", catalog.CreateMenuItem)
	api.GET("/menu-items/:id", catalog.GetMenuItem)
	api.PUT("/menu-items/:id", catalog.ReplaceMenuItem)
	api.PATCH("/menu-items/:id", catalog.PatchMenuItem)
	api.DELETE("/menu-items/:id", catalog.DeleteMenuItem)
	api.GET("/categories", catalog.ListCategories)
	api.POST("/categories", catalog.CreateCategory)

	cart := handler.NewCartHandler(deps.Carts)
	api.GET("/cart/menu-items", cart.List)
	api.POST("/cart/menu-items", cart.Add)
	api.DELETE("/cart/menu-items", cart.Clear)

	orders := handler.NewOrderHandler(deps.Orders)
	api.GET("/orders", orders.List)
	api.POST("/orders", orders.Create)
	api.GET("/orders/:id", orders.Get)
	api.PATCH("/orders/:id", orders.Update,
		middleware.RBAC(domain.RoleManager, domain.RoleDeliveryCrew))

	groups := handler.NewGroupHandler(deps.Groups)
	g := api.Group("/groups", middleware.RequireManager())
	g.GET("/:group/users", groups.ListMembers)
	g.POST("/:group/users", groups.AddMember)
	g.DELETE("/:group/users/:username", groups.RemoveMember)

	return e
}

// requestLogger writes one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
