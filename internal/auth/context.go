package auth

import (
	"context"

	"github.com/openshop-kr/journey-api/internal/domain"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID      string
	DisplayName string
	Email       string
	Role        domain.ActorRole
	// Service is set for callers authenticated with the API key.
	Service bool
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// HasAnyRole checks if user has any of the specified roles
func (u *UserContext) HasAnyRole(roles ...domain.ActorRole) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

// Actor converts the caller into the explicit actor passed to services.
func (u *UserContext) Actor() domain.Actor {
	return domain.Actor{UserID: u.UserID, Name: u.DisplayName, Role: u.Role}
}
