package common

import (
	"context"
)

// UserContext holds per-request user identity injected via X-Pocket-* headers.
// When absent the server operates in single-tenant mode under the default user.
type UserContext struct {
	UserID   string
	Currency string
}

type contextKey int

const userContextKey contextKey = iota

// DefaultUserID scopes all data when no user context is present.
const DefaultUserID = "default"

// DefaultCurrency is the ISO code used when no per-request currency is set.
const DefaultCurrency = "GBP"

// WithUserContext stores a UserContext in the request context.
func WithUserContext(ctx context.Context, uc *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, uc)
}

// UserContextFromContext retrieves the UserContext from context, or nil if absent.
func UserContextFromContext(ctx context.Context) *UserContext {
	uc, _ := ctx.Value(userContextKey).(*UserContext)
	return uc
}

// ResolveUserID returns the UserID from context, or DefaultUserID when no
// user context is present. Used by services and storage operations that need
// a user scope.
func ResolveUserID(ctx context.Context) string {
	if uc := UserContextFromContext(ctx); uc != nil && uc.UserID != "" {
		return uc.UserID
	}
	return DefaultUserID
}

// ResolveCurrency returns the display currency from context, or DefaultCurrency.
func ResolveCurrency(ctx context.Context) string {
	if uc := UserContextFromContext(ctx); uc != nil && uc.Currency != "" {
		return uc.Currency
	}
	return DefaultCurrency
}
