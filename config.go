package accounts

import (
	"time"

	"github.com/caarlos0/env/v11"
	goerrors "github.com/goliatone/go-errors"
)

// Config is built once at startup and passed by reference to the token codec
// and the lifecycle manager. Each token kind signs against its own secret.
//
// The login and renewal TTL pairs are configured independently: login issues
// a 15m access / 3d refresh pair, while the guard's renewal pass issues a 7d
// access / 15m refresh pair. Override RenewedAccessTokenTTL and
// RenewedRefreshTokenTTL to converge the two paths.
type Config struct {
	AccessTokenSecret  string `env:"JWT_ACCESS_TOKEN_SECRET,required"`
	RefreshTokenSecret string `env:"JWT_REFRESH_TOKEN_SECRET,required"`
	ActivationSecret   string `env:"ACTIVATION_SECRET,required"`

	ActivationTokenTTL time.Duration `env:"ACTIVATION_TOKEN_TTL" envDefault:"5m"`
	AccessTokenTTL     time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL    time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"72h"`

	RenewedAccessTokenTTL  time.Duration `env:"RENEWED_ACCESS_TOKEN_TTL" envDefault:"168h"`
	RenewedRefreshTokenTTL time.Duration `env:"RENEWED_REFRESH_TOKEN_TTL" envDefault:"15m"`

	ActivationCodeDigits int `env:"ACTIVATION_CODE_DIGITS" envDefault:"4"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "failed to parse accounts configuration")
	}
	return cfg, cfg.Validate()
}

// Validate ensures the three signing secrets are set and distinct enough to
// keep the token kinds from validating against each other's keys.
func (c *Config) Validate() error {
	if c.AccessTokenSecret == "" || c.RefreshTokenSecret == "" || c.ActivationSecret == "" {
		return goerrors.New("all three token secrets are required", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}

	if c.AccessTokenSecret == c.RefreshTokenSecret ||
		c.AccessTokenSecret == c.ActivationSecret ||
		c.RefreshTokenSecret == c.ActivationSecret {
		return goerrors.New("token secrets must be distinct per kind", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}

	if c.ActivationCodeDigits < 4 {
		return goerrors.New("activation codes need at least 4 digits", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}

	return nil
}

// TTLFor returns the issuance TTL for a token kind on the login path.
func (c *Config) TTLFor(kind TokenKind) time.Duration {
	switch kind {
	case TokenKindActivation:
		return c.ActivationTokenTTL
	case TokenKindAccess:
		return c.AccessTokenTTL
	case TokenKindRefresh:
		return c.RefreshTokenTTL
	}
	return 0
}

// RenewalTTLFor returns the issuance TTL used by the guard's renewal pass.
func (c *Config) RenewalTTLFor(kind TokenKind) time.Duration {
	switch kind {
	case TokenKindAccess:
		return c.RenewedAccessTokenTTL
	case TokenKindRefresh:
		return c.RenewedRefreshTokenTTL
	}
	return 0
}

func (c *Config) secretFor(kind TokenKind) []byte {
	switch kind {
	case TokenKindActivation:
		return []byte(c.ActivationSecret)
	case TokenKindAccess:
		return []byte(c.AccessTokenSecret)
	case TokenKindRefresh:
		return []byte(c.RefreshTokenSecret)
	}
	return nil
}
