package accounts

import (
	"context"
	"crypto/subtle"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// Manager orchestrates the account lifecycle: Unregistered ->
// PendingActivation -> Active. Registration persists nothing; the pending
// state lives entirely inside the signed activation token.
type Manager struct {
	repo   RepositoryManager
	codec  *TokenCodec
	cfg    *Config
	mailer Mailer
	codes  CodeGenerator
	logger Logger
}

// NewManager returns a lifecycle manager. The mailer defaults to a no-op that
// logs the code; wire a real sender with WithMailer.
func NewManager(repo RepositoryManager, codec *TokenCodec, cfg *Config) *Manager {
	return &Manager{
		repo:   repo,
		codec:  codec,
		cfg:    cfg,
		mailer: logMailer{logger: defLogger{}},
		codes:  NewCodeGenerator(cfg.ActivationCodeDigits),
		logger: defLogger{},
	}
}

func (m *Manager) WithLogger(logger Logger) *Manager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

func (m *Manager) WithMailer(mailer Mailer) *Manager {
	if mailer != nil {
		m.mailer = mailer
	}
	return m
}

func (m *Manager) WithCodeGenerator(codes CodeGenerator) *Manager {
	if codes != nil {
		m.codes = codes
	}
	return m
}

// RegisterInput is the already-validated registration payload. Field
// validation (shape, lengths, email format) happens at the transport
// boundary before the manager runs.
type RegisterInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
}

// Register hashes the password, rejects duplicate email/phone, and returns a
// signed activation token embedding the pending registration and a numeric
// one-time code dispatched to the user by mail. Nothing is persisted here.
//
// The two duplicate checks are sequential and not atomic with the eventual
// insert at activation; concurrent registrations can pass both and collapse
// later on the users table's unique columns.
func (m *Manager) Register(ctx context.Context, in RegisterInput) (string, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return "", richErr
		}
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	if err := m.ensureEmailFree(ctx, in.Email, ErrEmailExists); err != nil {
		return "", err
	}

	if _, err := m.repo.Users().GetByPhone(ctx, in.PhoneNumber); err == nil {
		return "", ErrPhoneExists
	} else if !repository.IsRecordNotFound(err) {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check phone uniqueness")
	}

	code, err := m.codes.Generate()
	if err != nil {
		return "", err
	}

	pending := PendingRegistration{
		Name:         in.Name,
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
	}

	token, err := m.codec.IssueActivation(pending, code)
	if err != nil {
		return "", err
	}

	// Delivery failure is logged but does not fail or roll back the
	// registration; the client still receives the activation token.
	if err := m.mailer.Send(ctx, MailMessage{
		To:       pending.Email,
		Subject:  "Account Activation",
		Template: "activation-mail",
		Data: map[string]any{
			"name": pending.Name,
			"code": code,
		},
	}); err != nil {
		m.logger.Error("Register activation mail dispatch failed", "email", pending.Email, "error", err)
	}

	return token, nil
}

// Activate redeems an activation token: verifies the signature and expiry,
// compares the one-time code, re-checks email uniqueness, and inserts the
// user record. The insert relies on the unique columns to reject the loser
// of a duplicate race.
func (m *Manager) Activate(ctx context.Context, activationToken, activationCode string) (*User, error) {
	claims, err := m.codec.VerifyActivation(activationToken)
	if err != nil {
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(claims.Code), []byte(activationCode)) != 1 {
		return nil, ErrInvalidActivationCode
	}

	// State may have changed since the token was issued.
	if err := m.ensureEmailFree(ctx, claims.Registration.Email, ErrEmailRegistered); err != nil {
		return nil, err
	}

	created, err := m.repo.Users().Create(ctx, claims.Registration.ToUser())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailRegistered
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create user")
	}

	return created, nil
}

// LoginError is the structured failure carried inside LoginResult for a bad
// password. Unlike not-found or token failures it is returned, not raised.
type LoginError struct {
	Message string `json:"message"`
}

// LoginResult is the outcome of a login attempt: either a user with a minted
// token pair, or an Error describing the credential mismatch.
type LoginResult struct {
	User         *User       `json:"user,omitempty"`
	AccessToken  string      `json:"access_token,omitempty"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	Error        *LoginError `json:"error,omitempty"`
}

// Login looks the user up by email and compares the password against the
// stored hash. Unknown emails raise; a hash mismatch is reported on the
// result value so callers branch on the Error field.
func (m *Manager) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := m.repo.Users().GetByEmail(ctx, email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up user")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if goerrors.Is(err, ErrMismatchedHashAndPassword) {
			return &LoginResult{Error: &LoginError{Message: "Invalid email or password"}}, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to compare password")
	}

	access, err := m.codec.IssueSession(TokenKindAccess, user.ID.String(), m.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := m.codec.IssueSession(TokenKindRefresh, user.ID.String(), m.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (m *Manager) ensureEmailFree(ctx context.Context, email string, conflict *goerrors.Error) error {
	if _, err := m.repo.Users().GetByEmail(ctx, email); err == nil {
		return conflict
	} else if !repository.IsRecordNotFound(err) {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email uniqueness")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// logMailer is the default Mailer: it records the dispatch instead of
// delivering it. Useful for dev and tests.
type logMailer struct {
	logger Logger
}

func (l logMailer) Send(_ context.Context, msg MailMessage) error {
	l.logger.Info("mail dispatch", "to", msg.To, "subject", msg.Subject, "template", msg.Template)
	return nil
}
