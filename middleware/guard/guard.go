// Package guard implements the session guard: a fiber middleware that
// authenticates a request from its accesstoken and refreshtoken headers and
// rotates both tokens on every guarded call.
package guard

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-accounts"
)

// Config collects the guard collaborators. Codec, Repo, and Cfg are required.
type Config struct {
	// Filter defines a function to skip the middleware
	Filter func(*fiber.Ctx) bool

	// ErrorHandler receives guard failures. Defaults to returning the error
	// so the app level error handler renders it.
	ErrorHandler fiber.ErrorHandler

	// ContextKey is the fiber locals key the GuardResult is stored under.
	// Defaults to accounts.GuardResultKey.
	ContextKey string

	Codec  *accounts.TokenCodec
	Repo   accounts.RepositoryManager
	Cfg    *accounts.Config
	Logger accounts.Logger
}

// New builds the guard handler. The pass is two stage: the access token is
// verified first, then a renewal pass runs off the refresh token no matter
// how much life the access token has left. A bad refresh token therefore
// fails the whole request even when the access token verified fine.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		access := c.Get(accounts.HeaderAccessToken)
		refresh := c.Get(accounts.HeaderRefreshToken)

		if access == "" || refresh == "" {
			return cfg.ErrorHandler(c, accounts.ErrLoginRequired)
		}

		if _, err := cfg.Codec.VerifySession(accounts.TokenKindAccess, access); err != nil {
			cfg.Logger.Debug("guard access token rejected", "error", err)
			return cfg.ErrorHandler(c, accounts.ErrInvalidAccessToken)
		}

		result, err := renew(c, cfg, refresh)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, result)

		c.Request().Header.Set(accounts.HeaderAccessToken, result.AccessToken)
		c.Request().Header.Set(accounts.HeaderRefreshToken, result.RefreshToken)
		c.Request().Header.Set(accounts.HeaderUser, result.User.ID.String())

		c.Set(accounts.HeaderAccessToken, result.AccessToken)
		c.Set(accounts.HeaderRefreshToken, result.RefreshToken)
		c.Set(accounts.HeaderUser, result.User.ID.String())

		c.SetUserContext(accounts.WithGuardContext(
			accounts.WithContext(c.UserContext(), result.User),
			result,
		))

		return c.Next()
	}
}

// renew validates the refresh token, loads its user, and mints the rotated
// pair using the renewal TTLs.
func renew(c *fiber.Ctx, cfg Config, refresh string) (*accounts.GuardResult, error) {
	claims, err := cfg.Codec.VerifySession(accounts.TokenKindRefresh, refresh)
	if err != nil {
		cfg.Logger.Debug("guard refresh token rejected", "error", err)
		return nil, accounts.ErrInvalidRefreshToken
	}

	id, err := accounts.ParseUserID(claims.UserID())
	if err != nil {
		return nil, accounts.ErrInvalidRefreshToken
	}

	user, err := cfg.Repo.Users().GetByID(c.Context(), id)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, accounts.ErrInvalidRefreshToken
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load session user")
	}

	access, err := cfg.Codec.IssueSession(
		accounts.TokenKindAccess,
		user.ID.String(),
		cfg.Cfg.RenewalTTLFor(accounts.TokenKindAccess),
	)
	if err != nil {
		return nil, err
	}

	rotated, err := cfg.Codec.IssueSession(
		accounts.TokenKindRefresh,
		user.ID.String(),
		cfg.Cfg.RenewalTTLFor(accounts.TokenKindRefresh),
	)
	if err != nil {
		return nil, err
	}

	return &accounts.GuardResult{
		User:         user,
		AccessToken:  access,
		RefreshToken: rotated,
	}, nil
}

// ResultFrom extracts the GuardResult a guarded handler runs with.
func ResultFrom(c *fiber.Ctx) (*accounts.GuardResult, bool) {
	result, ok := c.Locals(accounts.GuardResultKey).(*accounts.GuardResult)
	return result, ok && result != nil
}

func configDefault(config ...Config) Config {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Codec == nil {
		panic("GUARD: middleware configuration: TokenCodec is required.")
	}

	if cfg.Repo == nil {
		panic("GUARD: middleware configuration: RepositoryManager is required.")
	}

	if cfg.Cfg == nil {
		panic("GUARD: middleware configuration: Config is required.")
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
			return err
		}
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = accounts.GuardResultKey
	}

	if cfg.Logger == nil {
		cfg.Logger = accounts.DefaultLogger()
	}

	return cfg
}
