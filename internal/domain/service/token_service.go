package service

import (
	"signin/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the claims carried by an access token.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating access tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue mints a signed access token whose subject is the given username.
	Issue(subject string) (*entity.AccessToken, error)

	// ValidateToken checks the signature and time bounds of a token string.
	ValidateToken(tokenString string) (*Claims, error)
}
