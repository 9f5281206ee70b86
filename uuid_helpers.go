package accounts

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// ParseUserID parses the user id a session token asserts. Claims are signed,
// so a non-UUID subject means the token was minted outside this system.
func ParseUserID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryAuth, "token subject is not a valid user id").
			WithCode(goerrors.CodeUnauthorized)
	}
	return id, nil
}

// HasUserID reports whether claims carry a parseable user id.
func HasUserID(claims *SessionClaims) bool {
	if claims == nil {
		return false
	}
	_, err := ParseUserID(claims.UserID())
	return err == nil
}
