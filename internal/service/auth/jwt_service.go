// Package auth issues and validates the bearer tokens that guard mutating
// API routes.
package auth

import (
	"context"
	"slices"
	"time"
)

// ScopeWrite allows calling mutating routes.
const ScopeWrite = "roster:write"

// JWTService defines operations for managing JWT bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed token for subject carrying scopes.
	GenerateToken(ctx context.Context, subject string, scopes []string) (string, error)

	// ValidateToken validates tokenString and extracts its claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of a token.
type Claims struct {
	// Subject names the operator or client the token was issued to.
	Subject   string    `json:"sub,omitempty"`
	Scopes    []string  `json:"scopes,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// HasScope reports whether the claims grant scope.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}
