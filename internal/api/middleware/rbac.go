package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lojinha/catalog-api/internal/api/metrics"
	"github.com/lojinha/catalog-api/internal/core/domain"
	"github.com/lojinha/catalog-api/internal/core/ports"
)

// AdminOnly resolves the roles of the authenticated user and requires exact
// membership of ADMIN. The roles string comes from the cache when one is
// configured, otherwise straight from the user store. A user record that has
// vanished since the token was minted is an explicit 403, not a pass-through.
func AdminOnly(users ports.UserRepository, cache ports.RoleCache) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(ContextUserID).(uint)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token de acesso requerida")
			}

			roles, err := resolveRoles(c, users, cache, userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.AuthRejectionsTotal.WithLabelValues("role").Inc()
					return echo.NewHTTPError(http.StatusForbidden, "Role de ADMIN requerida")
				}
				return echo.NewHTTPError(http.StatusInternalServerError,
					"Erro ao verificar roles de usuário - "+err.Error())
			}

			if !domain.HasRole(roles, domain.RoleAdmin) {
				metrics.AuthRejectionsTotal.WithLabelValues("role").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "Role de ADMIN requerida")
			}

			return next(c)
		}
	}
}

func resolveRoles(c echo.Context, users ports.UserRepository, cache ports.RoleCache, userID uint) (string, error) {
	ctx := c.Request().Context()

	if cache != nil {
		if roles, ok := cache.GetRoles(ctx, userID); ok {
			return roles, nil
		}
	}

	user, err := users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if cache != nil {
		cache.SetRoles(ctx, userID, user.Roles)
	}
	return user.Roles, nil
}
