package accounts

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind selects the signing secret and expiration for a token.
type TokenKind string

const (
	TokenKindActivation TokenKind = "activation"
	TokenKindAccess     TokenKind = "access"
	TokenKindRefresh    TokenKind = "refresh"
)

// SessionClaims are the claims carried by access and refresh tokens: the user
// id plus the registered time bounds. Both kinds share the shape; only the
// secret and TTL differ.
type SessionClaims struct {
	jwt.RegisteredClaims
	UID string `json:"uid,omitempty"`
}

// UserID returns the user id, falling back to the subject claim.
func (c *SessionClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// Expires returns the expiration time
func (c *SessionClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *SessionClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// ActivationClaims are the claims carried by activation tokens: the full
// pending registration plus the one-time code delivered out-of-band. The
// server keeps no record between issuance and redemption, so the signature
// and the embedded code are the whole correctness story.
type ActivationClaims struct {
	jwt.RegisteredClaims
	Registration PendingRegistration `json:"registration"`
	Code         string              `json:"code"`
}

// Expires returns the expiration time
func (c *ActivationClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}
