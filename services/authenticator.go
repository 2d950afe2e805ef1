package services

import (
	"context"
	"errors"
	"strings"

	"github.com/nexohub/nexohub-api/models"
	"github.com/nexohub/nexohub-api/repositories"
	"github.com/nexohub/nexohub-api/security"
	"go.uber.org/zap"
)

// TokenVerifier verifies access tokens
type TokenVerifier interface {
	Verify(token string) (security.Claims, error)
}

// Authenticator resolves a bearer token to an active principal.
// Every rejection surfaces as ErrUnauthorized; the cause is only logged.
type Authenticator struct {
	tokens TokenVerifier
	users  repositories.UserRepository
	logger *zap.Logger
}

// NewAuthenticator creates a new Authenticator
func NewAuthenticator(tokens TokenVerifier, users repositories.UserRepository, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		tokens: tokens,
		users:  users,
		logger: logger,
	}
}

// Authenticate verifies bearer and loads the principal named by its subject
func (a *Authenticator) Authenticate(ctx context.Context, bearer string) (*models.User, error) {
	token := strings.TrimSpace(bearer)
	if token == "" {
		return nil, a.reject("missing token", nil)
	}

	claims, err := a.tokens.Verify(token)
	if err != nil {
		return nil, a.reject("token verification failed", err)
	}

	subject, err := security.ParseSubject(claims.Subject)
	if err != nil {
		return nil, a.reject("invalid subject", err)
	}

	user, err := a.lookup(ctx, subject)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, a.reject("user not found", err)
		}
		a.logger.Error("failed to load principal", zap.Error(err))
		return nil, ErrDatabaseError.Because(err)
	}

	if !user.IsActive {
		return nil, a.reject("inactive user", nil)
	}

	return user, nil
}

func (a *Authenticator) lookup(ctx context.Context, subject security.Subject) (*models.User, error) {
	switch subject.Kind {
	case security.SubjectID:
		return a.users.GetByID(ctx, subject.ID)
	case security.SubjectEmail:
		return a.users.GetByEmail(ctx, subject.Email)
	default:
		return nil, repositories.ErrNotFound
	}
}

func (a *Authenticator) reject(reason string, cause error) error {
	fields := []zap.Field{zap.String("reason", reason)}
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}
	a.logger.Debug("authentication rejected", fields...)

	if cause == nil {
		cause = errors.New(reason)
	}
	return ErrUnauthorized.Because(cause)
}
