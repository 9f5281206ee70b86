package accounts

import (
	"context"
	"fmt"
)

// Header keys shared between the transport layer, the session guard, and
// logout. The lowercase casing is part of the wire protocol; clients read the
// rotated pair back from these same keys.
const (
	HeaderAccessToken  = "accesstoken"
	HeaderRefreshToken = "refreshtoken"
	HeaderUser         = "user"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// MailMessage is the payload handed to a Mailer; Template selects the body
// and Data carries template bindings such as the recipient name and code.
type MailMessage struct {
	To       string
	Subject  string
	Template string
	Data     map[string]any
}

// Mailer delivers activation codes out-of-band. Delivery failures are logged
// by callers but do not roll back registration.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// CodeGenerator produces the numeric one-time codes embedded in activation
// tokens.
type CodeGenerator interface {
	Generate() (string, error)
}

// GuardResult is the explicit outcome of a guarded request: the resolved user
// plus the freshly rotated token pair the transport layer relays back to the
// client.
type GuardResult struct {
	User         *User  `json:"user,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// DefaultLogger returns the built-in printf-style logger.
func DefaultLogger() Logger {
	return defLogger{}
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] ACCOUNTS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
