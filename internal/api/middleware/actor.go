package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/littlelemon/restaurant-api/internal/core/ports"
)

// Actor resolves the authenticated user into a domain.Actor once per request.
// It must run after Auth.
func Actor(identity ports.IdentityService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(UserIDKey).(uint)
			if !ok || userID == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			actor, err := identity.ResolveActor(c.Request().Context(), userID)
			if err != nil {
				return err
			}

			c.Set(ActorKey, actor)
			return next(c)
		}
	}
}
