// Package mailer delivers account mail over SMTP. It implements the
// accounts.Mailer interface with a gomail dialer and a small set of built-in
// HTML bodies keyed by template name.
package mailer

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/gomail.v2"

	"github.com/goliatone/go-accounts"
)

// Config carries the SMTP connection settings.
type Config struct {
	Host     string `env:"SMTP_HOST" json:"host"`
	Port     int    `env:"SMTP_PORT" envDefault:"587" json:"port"`
	Username string `env:"SMTP_USERNAME" json:"username"`
	Password string `env:"SMTP_PASSWORD" json:"-"`
	From     string `env:"SMTP_FROM" json:"from"`
}

// SMTP sends mail through a gomail dialer.
type SMTP struct {
	cfg    Config
	dialer *gomail.Dialer
	logger accounts.Logger
}

var _ accounts.Mailer = (*SMTP)(nil)

func New(cfg Config) *SMTP {
	return &SMTP{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: accounts.DefaultLogger(),
	}
}

func (s *SMTP) WithLogger(logger accounts.Logger) *SMTP {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Send renders the message body for msg.Template and dispatches it. The
// context is checked before dialing since gomail itself does not take one.
func (s *SMTP) Send(ctx context.Context, msg accounts.MailMessage) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	body, err := renderBody(msg)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("mail send failed", "to", msg.To, "error", err)
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to send mail").
			WithMetadata(map[string]any{
				"to":       msg.To,
				"template": msg.Template,
			})
	}

	s.logger.Info("mail sent", "to", msg.To, "subject", msg.Subject)

	return nil
}

func renderBody(msg accounts.MailMessage) (string, error) {
	switch msg.Template {
	case "activation-mail":
		return fmt.Sprintf(
			`<p>Hello %v,</p>
<p>Thank you for signing up. Use the code below to activate your account. The code expires in a few minutes.</p>
<h2>%v</h2>
<p>If you did not request this, ignore this message.</p>`,
			msg.Data["name"], msg.Data["code"],
		), nil
	default:
		return "", goerrors.New(
			fmt.Sprintf("unknown mail template: %s", msg.Template),
			goerrors.CategoryBadInput,
		).WithCode(goerrors.CodeBadRequest)
	}
}
