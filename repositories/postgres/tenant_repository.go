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

// TenantRepository implements the repositories.TenantRepository interface
type TenantRepository struct {
	txBinding
	logger *zap.Logger
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *DB, logger *zap.Logger) repositories.TenantRepository {
	return &TenantRepository{
		txBinding: txBinding{db: db},
		logger:    logger,
	}
}

// Create creates a new tenant
func (r *TenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (name, created_at)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.executor(ctx).QueryRowContext(ctx, query, tenant.Name, tenant.CreatedAt).Scan(&tenant.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tenant %q: %w", tenant.Name, repositories.ErrDuplicate)
		}
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	r.logger.Debug("tenant created", zap.Int64("id", tenant.ID), zap.String("name", tenant.Name))
	return nil
}

// GetByName retrieves a tenant by name
func (r *TenantRepository) GetByName(ctx context.Context, name string) (*models.Tenant, error) {
	query := `
		SELECT id, name, created_at
		FROM tenants
		WHERE name = $1
	`

	tenant := &models.Tenant{}
	err := r.executor(ctx).QueryRowContext(ctx, query, name).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tenant %q: %w", name, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return tenant, nil
}

// WithTx returns a new repository instance bound to the transaction
func (r *TenantRepository) WithTx(tx repositories.Transaction) repositories.TenantRepository {
	return &TenantRepository{
		txBinding: r.bind(tx),
		logger:    r.logger,
	}
}
