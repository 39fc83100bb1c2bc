package middleware

import (
	"github.com/labstack/echo/v4"

	"prayer-circle/pkg/apperrors"
)

// RoleMiddleware gates a route to callers carrying the given role claim.
// It must run after JWTMiddleware.
func RoleMiddleware(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role != requiredRole {
				return apperrors.RespondWithError(c, apperrors.NewForbidden(
					apperrors.ErrCodeForbidden, "Access denied.",
				))
			}
			return next(c)
		}
	}
}
