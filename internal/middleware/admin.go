package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/anonto42/lms/backend/internal/models"
	"github.com/anonto42/lms/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserLookup finds users by Firebase UID
type UserLookup interface {
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
}

// RequireAdmin lets only users with the admin role through. It must run after
// an auth middleware.
func RequireAdmin(users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, err := UserIDFromContext(c)
			if err != nil {
				return err
			}

			user, err := users.GetUserByFirebaseUID(c.Request().Context(), uid)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load user")
			}
			if !user.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}

			c.Set(ContextUser, user)
			return next(c)
		}
	}
}
