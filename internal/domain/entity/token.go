package entity

import "time"

// TokenTypeBearer is the token type reported alongside every issued access token.
const TokenTypeBearer = "bearer"

// AccessToken is a signed, time-bounded credential minted for one successful login.
// Issued tokens are not stored.
type AccessToken struct {
	Token     string
	TokenType string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
