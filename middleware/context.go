package middleware

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/nexohub/nexohub-api/models"
	"github.com/nexohub/nexohub-api/services"
)

// Context key type to avoid collisions
type contextKey string

const (
	// PrincipalKey is the context key for the authenticated user
	PrincipalKey contextKey = "principal"

	// TenantScopeKey is the context key for the authorized tenant scope
	TenantScopeKey contextKey = "tenant_scope"
)

// GetRequestIDFromContext retrieves the request ID from context
func GetRequestIDFromContext(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, chimw.RequestIDKey, requestID)
}

// GetPrincipal retrieves the authenticated user from context
func GetPrincipal(ctx context.Context) *models.User {
	if val := ctx.Value(PrincipalKey); val != nil {
		if user, ok := val.(*models.User); ok {
			return user
		}
	}
	return nil
}

// WithPrincipal adds the authenticated user to the context
func WithPrincipal(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, PrincipalKey, user)
}

// GetTenantScope retrieves the tenant scope from context.
// The second result is false when no scope was established.
func GetTenantScope(ctx context.Context) (services.TenantScope, bool) {
	if val := ctx.Value(TenantScopeKey); val != nil {
		if scope, ok := val.(services.TenantScope); ok && scope.Valid() {
			return scope, true
		}
	}
	return services.TenantScope{}, false
}

// WithTenantScope adds the tenant scope to the context
func WithTenantScope(ctx context.Context, scope services.TenantScope) context.Context {
	return context.WithValue(ctx, TenantScopeKey, scope)
}
