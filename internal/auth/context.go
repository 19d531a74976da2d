package auth

import (
	"context"

	"authdemo.org/internal/directory"
)

type userContextKey struct{}

// ContextWithUser attaches the authenticated user record to the context.
// The attachment lives only for one request.
func ContextWithUser(ctx context.Context, user directory.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, &user)
}

// UserFromContext extracts the authenticated user from the context.
func UserFromContext(ctx context.Context) (directory.User, bool) {
	if ctx == nil {
		return directory.User{}, false
	}
	v, ok := ctx.Value(userContextKey{}).(*directory.User)
	if !ok || v == nil {
		return directory.User{}, false
	}
	return *v, true
}
