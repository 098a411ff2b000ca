package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/sociallink-app/backend/internal/apperr"
	"github.com/sociallink-app/backend/internal/models"
)

// ContextUserKey is the echo context key holding the authenticated user ID.
const ContextUserKey = "userID"

// JWTAuth checks for a valid bearer token and stores the caller's user ID
// in the request context. The secret is injected at wiring time.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return apperr.New(apperr.Unauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return apperr.New(apperr.Unauthorized, "Invalid Authorization header format")
			}
			tokenString := parts[1]

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, apperr.New(apperr.Unauthorized, "Unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return apperr.New(apperr.Unauthorized, "Invalid or expired token")
			}

			c.Set(ContextUserKey, claims.UserID)

			return next(c)
		}
	}
}

// CurrentUserID returns the authenticated user ID stored by JWTAuth.
func CurrentUserID(c echo.Context) (uint, error) {
	id, ok := c.Get(ContextUserKey).(uint)
	if !ok {
		return 0, apperr.New(apperr.Unauthorized, "Not authenticated")
	}
	return id, nil
}
