package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nexohub/nexohub-api/models"
	"github.com/nexohub/nexohub-api/repositories"
	"go.uber.org/zap"
)

const userColumns = `id, email, password_hash, role, is_active, tenant_id, created_at, updated_at`

// UserRepository implements the repositories.UserRepository interface
type UserRepository struct {
	txBinding
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB, logger *zap.Logger) repositories.UserRepository {
	return &UserRepository{
		txBinding: txBinding{db: db},
		logger:    logger,
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var tenantID sql.NullInt64
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&tenantID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if tenantID.Valid {
		id := tenantID.Int64
		user.TenantID = &id
	}
	return user, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, role, is_active, tenant_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.executor(ctx).QueryRowContext(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsActive,
		user.TenantID,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email already registered: %w", repositories.ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Debug("user created", zap.Int64("id", user.ID), zap.String("role", string(user.Role)))
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.executor(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.executor(ctx).QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user for email: %w", repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// AssignTenant sets the tenant of a user
func (r *UserRepository) AssignTenant(ctx context.Context, userID, tenantID int64) error {
	query := `
		UPDATE users
		SET tenant_id = $2,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	result, err := r.executor(ctx).ExecContext(ctx, query, userID, tenantID)
	if err != nil {
		return fmt.Errorf("failed to assign tenant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user %d: %w", userID, repositories.ErrNotFound)
	}

	r.logger.Debug("tenant assigned", zap.Int64("user_id", userID), zap.Int64("tenant_id", tenantID))
	return nil
}

// WithTx returns a new repository instance bound to the transaction
func (r *UserRepository) WithTx(tx repositories.Transaction) repositories.UserRepository {
	return &UserRepository{
		txBinding: r.bind(tx),
		logger:    r.logger,
	}
}
