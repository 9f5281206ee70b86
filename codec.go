package accounts

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenCodec signs and verifies the three token kinds. Issuance and
// verification are pure with respect to concurrency: no shared mutable state
// beyond the immutable config.
type TokenCodec struct {
	cfg    *Config
	logger Logger
}

// NewTokenCodec creates a codec bound to the given configuration.
func NewTokenCodec(cfg *Config) *TokenCodec {
	return &TokenCodec{cfg: cfg, logger: defLogger{}}
}

func (tc *TokenCodec) WithLogger(logger Logger) *TokenCodec {
	if logger != nil {
		tc.logger = logger
	}
	return tc
}

// IssueSession mints an access or refresh token asserting the given user id,
// expiring after ttl. Callers pick the ttl so the login path and the guard's
// renewal path can disagree, as configured.
func (tc *TokenCodec) IssueSession(kind TokenKind, userID string, ttl time.Duration) (string, error) {
	if kind != TokenKindAccess && kind != TokenKindRefresh {
		return "", goerrors.New("session tokens must be access or refresh kind", goerrors.CategoryBadInput)
	}

	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UID: userID,
	}

	return tc.sign(kind, claims)
}

// IssueActivation mints an activation token embedding the pending
// registration and its one-time code.
func (tc *TokenCodec) IssueActivation(reg PendingRegistration, code string) (string, error) {
	now := time.Now()
	claims := &ActivationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   reg.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.cfg.ActivationTokenTTL)),
		},
		Registration: reg,
		Code:         code,
	}

	return tc.sign(TokenKindActivation, claims)
}

// VerifySession parses and validates an access or refresh token, returning
// its claims.
func (tc *TokenCodec) VerifySession(kind TokenKind, raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := tc.verify(kind, raw, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyActivation parses and validates an activation token, returning the
// embedded pending registration and code.
func (tc *TokenCodec) VerifyActivation(raw string) (*ActivationClaims, error) {
	claims := &ActivationClaims{}
	if err := tc.verify(TokenKindActivation, raw, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (tc *TokenCodec) sign(kind TokenKind, claims jwt.Claims) (string, error) {
	secret := tc.cfg.secretFor(kind)
	if len(secret) == 0 {
		return "", goerrors.New("no signing secret configured for token kind", goerrors.CategoryInternal).
			WithMetadata(map[string]any{"kind": string(kind)})
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign JWT")
	}

	return signed, nil
}

func (tc *TokenCodec) verify(kind TokenKind, raw string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			tc.logger.Error("TokenCodec verify encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tc.cfg.secretFor(kind), nil
	})

	if err != nil {
		if goerrors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return goerrors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode).
			WithCode(goerrors.CodeUnauthorized)
	}

	if !token.Valid {
		return ErrTokenMalformed
	}

	return nil
}
