package mailer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	accounts "github.com/goliatone/go-accounts"
	"github.com/goliatone/go-accounts/mailer"
)

func TestSMTP_Send_UnknownTemplate(t *testing.T) {
	m := mailer.New(mailer.Config{Host: "localhost", Port: 2525, From: "noreply@example.com"})

	err := m.Send(context.Background(), accounts.MailMessage{
		To:       "ann@example.com",
		Subject:  "Account Activation",
		Template: "no-such-template",
	})

	assert.Error(t, err)
}

func TestSMTP_Send_CancelledContext(t *testing.T) {
	m := mailer.New(mailer.Config{Host: "localhost", Port: 2525, From: "noreply@example.com"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Send(ctx, accounts.MailMessage{
		To:       "ann@example.com",
		Subject:  "Account Activation",
		Template: "activation-mail",
		Data:     map[string]any{"name": "Ann", "code": "4821"},
	})

	assert.ErrorIs(t, err, context.Canceled)
}
