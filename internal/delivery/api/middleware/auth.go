package middleware

import (
	"strings"

	deliverycontext "signin/internal/delivery/context"
	domainerrors "signin/internal/domain/errors"
	"signin/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const (
	bearerPrefix = "bearer "
	claimsKey    = "claims"
)

// AuthMiddleware validates bearer access tokens minted by the login flow.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate rejects the request with 401 unless it carries a valid bearer token,
// and stores the token claims for the handler.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			return domainerrors.ErrUnauthorized.WrapMessage("missing bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(strings.TrimSpace(authHeader[len(bearerPrefix):]))
		if err != nil {
			return domainerrors.ErrUnauthorized.WrapMessage(err.Error())
		}

		deliverycontext.SetSubject(c, claims.Subject)
		c.Set(claimsKey, claims)

		return next(c)
	}
}

// GetClaims returns the claims stored by Authenticate, or nil on unauthenticated routes.
func GetClaims(c echo.Context) *service.Claims {
	if claims, ok := c.Get(claimsKey).(*service.Claims); ok {
		return claims
	}

	return nil
}
