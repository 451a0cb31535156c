package middleware

import (
	"context"

	"dojohub/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// JWTCustomClaims is the token payload issued by the identity service.
type JWTCustomClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// AttachUserID copies the authenticated user id out of the verified JWT
// into the request context, where handlers and services read it.
func AttachUserID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return common.SendUnauthorizedError(c)
			}
			claims, ok := token.Claims.(*JWTCustomClaims)
			if !ok || claims.UserID == uuid.Nil {
				return common.SendUnauthorizedError(c)
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, claims.UserID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
