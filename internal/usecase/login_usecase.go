// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"
)

// LoginInput defines the credentials presented by a client.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput carries the access token minted for a verified user.
type LoginOutput struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// LoginUsecase verifies a username/password pair and issues a bearer token.
// Unknown usernames and wrong passwords fail with the same error.
type LoginUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
