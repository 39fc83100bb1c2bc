package middleware

import (
	"strings"

	"prayer-circle/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
)

// JWTMiddleware validates the bearer token and sets user_id, email, and role
// in the request context.
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := parseBearer(c)
		if err != nil {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeTokenInvalid, "Missing or invalid token.",
			))
		}
		setClaims(c, claims)
		return next(c)
	}
}

// OptionalJWTMiddleware sets the user claims when a valid bearer token is
// present and continues anonymously otherwise. Submissions accept both.
func OptionalJWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if claims, err := parseBearer(c); err == nil {
			setClaims(c, claims)
		}
		return next(c)
	}
}

func parseBearer(c echo.Context) (jwt.MapClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, jwt.ErrTokenMalformed
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(viper.GetString("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func setClaims(c echo.Context, claims jwt.MapClaims) {
	if id, ok := claims["user_id"].(float64); ok {
		c.Set("user_id", int64(id))
	}
	if email, ok := claims["email"].(string); ok {
		c.Set("email", email)
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
}
