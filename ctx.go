package accounts

import (
	"context"
)

var userCtxKey = &contextKey{"user"}
var guardCtxKey = &contextKey{"guard"}

type contextKey struct {
	name string
}

// WithContext sets the User in the given context
func WithContext(r context.Context, user *User) context.Context {
	return context.WithValue(r, userCtxKey, user)
}

// FromContext finds the user from the context.
func FromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// WithGuardContext sets the GuardResult in the given context
func WithGuardContext(r context.Context, result *GuardResult) context.Context {
	return context.WithValue(r, guardCtxKey, result)
}

// GuardFromContext extracts the GuardResult from the standard context
func GuardFromContext(ctx context.Context) (*GuardResult, bool) {
	raw, ok := ctx.Value(guardCtxKey).(*GuardResult)
	return raw, ok
}
