package accounts_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	accounts "github.com/goliatone/go-accounts"
)

func TestSessionClaims_UserID(t *testing.T) {
	t.Run("returns UID when present", func(t *testing.T) {
		claims := &accounts.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user123"},
			UID:              "uid456",
		}

		assert.Equal(t, "uid456", claims.UserID())
	})

	t.Run("fallback to subject when UID is empty", func(t *testing.T) {
		claims := &accounts.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user123"},
		}

		assert.Equal(t, "user123", claims.UserID())
	})
}

func TestSessionClaims_Expires(t *testing.T) {
	t.Run("returns expiration when set", func(t *testing.T) {
		exp := time.Now().Add(time.Hour).Truncate(time.Second)
		claims := &accounts.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(exp),
			},
		}

		assert.Equal(t, exp, claims.Expires())
	})

	t.Run("zero time when unset", func(t *testing.T) {
		claims := &accounts.SessionClaims{}
		assert.True(t, claims.Expires().IsZero())
	})
}

func TestActivationClaims_CarriesRegistration(t *testing.T) {
	pending := accounts.PendingRegistration{
		Name:         "Ann",
		Email:        "ann@example.com",
		PasswordHash: "$2a$10$hash",
		PhoneNumber:  "5551234",
	}

	claims := &accounts.ActivationClaims{
		Registration: pending,
		Code:         "4821",
	}

	assert.Equal(t, pending, claims.Registration)
	assert.Equal(t, "4821", claims.Code)
	assert.True(t, claims.Expires().IsZero())
}
