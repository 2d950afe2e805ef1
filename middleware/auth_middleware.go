package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/nexohub/nexohub-api/models"
	"github.com/nexohub/nexohub-api/services"
	"github.com/nexohub/nexohub-api/utils"
	"go.uber.org/zap"
)

// BootstrapTokenHeader carries the shared secret of the bootstrap endpoints
const BootstrapTokenHeader = "X-Bootstrap-Token"

// Authenticator resolves a bearer token to a principal
type Authenticator interface {
	Authenticate(ctx context.Context, bearer string) (*models.User, error)
}

// TenantAuthorizer scopes a principal to its tenant
type TenantAuthorizer interface {
	ScopeToTenant(principal *models.User, role models.UserRole) (services.TenantScope, error)
}

// AuthMiddleware provides authentication and authorization middleware
type AuthMiddleware struct {
	authenticator Authenticator
	authorizer    TenantAuthorizer
	logger        *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authenticator Authenticator, authorizer TenantAuthorizer, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		authorizer:    authorizer,
		logger:        logger,
	}
}

// RequireAuth is a middleware that requires a valid bearer token for an active user
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		user, err := m.authenticator.Authenticate(ctx, extractBearerToken(r))
		if err != nil {
			if services.IsInternalError(err) {
				m.logger.Error("authentication failed",
					zap.String("request_id", requestID),
					zap.Error(err))
				_ = utils.WriteInternalServerError(w, "An internal error occurred")
				return
			}
			m.logger.Debug("request not authenticated",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, services.ErrUnauthorized.Message)
			return
		}

		m.logger.Debug("authentication successful",
			zap.String("request_id", requestID),
			zap.Int64("user_id", user.ID),
			zap.String("role", string(user.Role)))

		next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, user)))
	})
}

// RequireTenantScope is a middleware that requires role and an assigned tenant.
// It must run after RequireAuth.
func (m *AuthMiddleware) RequireTenantScope(role models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestIDFromContext(ctx)

			scope, err := m.authorizer.ScopeToTenant(GetPrincipal(ctx), role)
			if err != nil {
				m.logger.Warn("tenant authorization failed",
					zap.String("request_id", requestID),
					zap.String("required_role", string(role)),
					zap.Error(err))
				writeGateError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenantScope(ctx, scope)))
		})
	}
}

// RequireBootstrapToken is a middleware that requires the X-Bootstrap-Token
// header to equal expected. An empty expected rejects every request with 500.
func RequireBootstrapToken(expected string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if expected == "" {
				logger.Error("bootstrap token not configured")
				_ = utils.WriteInternalServerError(w, "NEXOHUB_BOOTSTRAP_TOKEN is not set")
				return
			}

			provided := r.Header.Get(BootstrapTokenHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
				logger.Warn("invalid bootstrap token",
					zap.String("request_id", GetRequestIDFromContext(r.Context())))
				_ = utils.WriteUnauthorized(w, "Invalid bootstrap token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeGateError(w http.ResponseWriter, err error) {
	message := "An internal error occurred"
	var domainErr *services.DomainError
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}

	switch {
	case services.IsUnauthorizedError(err):
		_ = utils.WriteUnauthorized(w, message)
	case services.IsForbiddenError(err):
		_ = utils.WriteForbidden(w, message)
	case services.IsBadRequestError(err):
		_ = utils.WriteBadRequest(w, message, nil)
	default:
		_ = utils.WriteInternalServerError(w, "An internal error occurred")
	}
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
