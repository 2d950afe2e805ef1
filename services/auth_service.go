package services

import (
	"context"
	"errors"
	"time"

	"github.com/nexohub/nexohub-api/models"
	"github.com/nexohub/nexohub-api/repositories"
	"github.com/nexohub/nexohub-api/security"
	"github.com/nexohub/nexohub-api/utils"
	"go.uber.org/zap"
)

// TokenTypeBearer is the token_type reported alongside every issued token
const TokenTypeBearer = "bearer"

// PasswordHasher hashes and verifies credentials
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer issues access tokens
type TokenIssuer interface {
	Issue(subject string, extra security.ExtraClaims) (string, error)
	Expiry() time.Duration
}

// RegisterInput carries a registration request
type RegisterInput struct {
	Email    string
	Password string
	Role     models.UserRole
}

// TokenResult is returned by Register and Login
type TokenResult struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int64           `json:"expires_in"`
	UserID      int64           `json:"user_id"`
	Role        models.UserRole `json:"role"`
}

// AuthService registers principals and exchanges credentials for tokens
type AuthService struct {
	users  repositories.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	logger *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users repositories.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates an active principal and returns a token for it
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*TokenResult, error) {
	email := utils.NormalizeEmail(in.Email)
	if err := utils.ValidateEmail(email); err != nil {
		return nil, ErrInvalidEmail.Because(err)
	}

	role := in.Role
	if role == "" {
		role = models.DefaultRole
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole.WithDetail("role", string(role))
	}

	if !security.ValidatePassword(in.Password) {
		return nil, ErrPolicyViolation
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrDuplicateEmail
	case !errors.Is(err, repositories.ErrNotFound):
		s.logger.Error("failed to check email", zap.Error(err))
		return nil, ErrDatabaseError.Because(err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		switch {
		case errors.Is(err, security.ErrPolicyViolation):
			return nil, ErrPolicyViolation
		case errors.Is(err, security.ErrPasswordTooLong):
			return nil, ErrPasswordTooLong
		}
		return nil, WrapInternal("failed to hash password", err)
	}

	user := models.NewUser(email, hash, role)
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, ErrDatabaseError.Because(err)
	}

	s.logger.Info("user registered",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)))

	return s.issue(user)
}

// Login exchanges credentials for a token. Unknown email, inactive principal
// and wrong password all return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResult, error) {
	user, err := s.users.GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to load user for login", zap.Error(err))
		return nil, ErrDatabaseError.Because(err)
	}

	if !user.IsActive || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*TokenResult, error) {
	token, err := s.tokens.Issue(security.IDSubject(user.ID), security.ExtraClaims{
		security.ClaimRole:  string(user.Role),
		security.ClaimEmail: user.Email,
	})
	if err != nil {
		return nil, WrapInternal("failed to issue token", err)
	}

	return &TokenResult{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   int64(s.tokens.Expiry() / time.Second),
		UserID:      user.ID,
		Role:        user.Role,
	}, nil
}
