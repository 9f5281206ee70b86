package accounts_test

import (
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"

	accounts "github.com/goliatone/go-accounts"
)

func TestErrorCategories(t *testing.T) {
	tests := []struct {
		name     string
		err      *goerrors.Error
		category goerrors.Category
	}{
		{name: "login required", err: accounts.ErrLoginRequired, category: goerrors.CategoryAuth},
		{name: "invalid access token", err: accounts.ErrInvalidAccessToken, category: goerrors.CategoryAuth},
		{name: "invalid refresh token", err: accounts.ErrInvalidRefreshToken, category: goerrors.CategoryAuth},
		{name: "invalid activation code", err: accounts.ErrInvalidActivationCode, category: goerrors.CategoryAuth},
		{name: "email exists", err: accounts.ErrEmailExists, category: goerrors.CategoryConflict},
		{name: "phone exists", err: accounts.ErrPhoneExists, category: goerrors.CategoryConflict},
		{name: "email registered", err: accounts.ErrEmailRegistered, category: goerrors.CategoryConflict},
		{name: "user not found", err: accounts.ErrUserNotFound, category: goerrors.CategoryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "Please login to continue", accounts.ErrLoginRequired.Message)
	assert.Equal(t, "Invalid access token", accounts.ErrInvalidAccessToken.Message)
	assert.Equal(t, "Invalid refresh token", accounts.ErrInvalidRefreshToken.Message)
	assert.Equal(t, "Email already exist", accounts.ErrEmailExists.Message)
	assert.Equal(t, "Phone number already exist", accounts.ErrPhoneExists.Message)
	assert.Equal(t, "User not found", accounts.ErrUserNotFound.Message)
}

func TestIsTokenExpiredError(t *testing.T) {
	assert.True(t, accounts.IsTokenExpiredError(accounts.ErrTokenExpired))
	assert.True(t, accounts.IsTokenExpiredError(errors.New("token is expired by 3m")))
	assert.False(t, accounts.IsTokenExpiredError(nil))
	assert.False(t, accounts.IsTokenExpiredError(errors.New("some other error")))
}

func TestIsMalformedError(t *testing.T) {
	assert.True(t, accounts.IsMalformedError(accounts.ErrTokenMalformed))
	assert.True(t, accounts.IsMalformedError(errors.New("token is malformed")))
	assert.False(t, accounts.IsMalformedError(nil))
	assert.False(t, accounts.IsMalformedError(errors.New("some other error")))

	// Signature failures surface as a categorized wrap around the jwt error,
	// not as the sentinel itself. The helper matches them by text code.
	wrapped := goerrors.Wrap(errors.New("token signature is invalid"),
		accounts.ErrTokenMalformed.Category, accounts.ErrTokenMalformed.Message).
		WithTextCode(accounts.TextCodeTokenMalformed)
	assert.True(t, accounts.IsMalformedError(wrapped))
}
