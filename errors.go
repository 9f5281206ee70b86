package accounts

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeTokenExpired   = "TOKEN_EXPIRED"
	TextCodeTokenMalformed = "TOKEN_MALFORMED"
	TextCodeEmptyPassword  = "EMPTY_PASSWORD"
	TextCodeLoginRequired  = "LOGIN_REQUIRED"
)

// ErrTokenExpired is returned when a token's exp claim is in the past.
var ErrTokenExpired = goerrors.New("authentication token expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed covers forged signatures, unexpected signing methods, and
// undecodable payloads.
var ErrTokenMalformed = goerrors.New("invalid authentication token", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords before they reach bcrypt.
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(goerrors.CodeBadRequest)

// ErrMismatchedHashAndPassword normalizes bcrypt's mismatch error.
var ErrMismatchedHashAndPassword = goerrors.New("password does not match", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)

// ErrLoginRequired is raised by the session guard when either token header is
// missing.
var ErrLoginRequired = goerrors.New("Please login to continue", goerrors.CategoryAuth).
	WithTextCode(TextCodeLoginRequired).
	WithCode(goerrors.CodeUnauthorized)

// ErrInvalidAccessToken is raised when the accesstoken header fails
// verification.
var ErrInvalidAccessToken = goerrors.New("Invalid access token", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)

// ErrInvalidRefreshToken is raised during the guard's renewal pass. The whole
// guarded call fails even though the access token already verified; see the
// guard notes before changing this.
var ErrInvalidRefreshToken = goerrors.New("Invalid refresh token", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)

// ErrInvalidActivationCode is raised when the supplied code does not equal
// the code embedded in the activation token.
var ErrInvalidActivationCode = goerrors.New("Invalid activation code", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)

// ErrEmailExists and ErrPhoneExists mirror the duplicate pre-checks at
// registration. The checks are sequential and not atomic with the later
// insert; the unique columns on users are the real backstop.
var ErrEmailExists = goerrors.New("Email already exist", goerrors.CategoryConflict).
	WithCode(goerrors.CodeConflict)

var ErrPhoneExists = goerrors.New("Phone number already exist", goerrors.CategoryConflict).
	WithCode(goerrors.CodeConflict)

// ErrEmailRegistered is the activation-time re-check of email uniqueness.
var ErrEmailRegistered = goerrors.New("Email already registered", goerrors.CategoryConflict).
	WithCode(goerrors.CodeConflict)

// ErrUserNotFound is raised by login for an unknown email.
var ErrUserNotFound = goerrors.New("User not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenMalformed) {
		return true
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.TextCode == TextCodeTokenMalformed {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed")
}
