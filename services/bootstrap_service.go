package services

import (
	"context"
	"errors"
	"strings"

	"github.com/nexohub/nexohub-api/models"
	"github.com/nexohub/nexohub-api/repositories"
	"github.com/nexohub/nexohub-api/utils"
	"go.uber.org/zap"
)

// TenantAssignment reports the outcome of AssignTenant
type TenantAssignment struct {
	AdminEmail string `json:"admin_email"`
	TenantID   int64  `json:"tenant_id"`
	TenantName string `json:"tenant_name"`
}

// BootstrapService performs privileged setup that precedes normal tenant operation
type BootstrapService struct {
	txManager repositories.TransactionManager
	users     repositories.UserRepository
	tenants   repositories.TenantRepository
	logger    *zap.Logger
}

// NewBootstrapService creates a new BootstrapService
func NewBootstrapService(txManager repositories.TransactionManager, users repositories.UserRepository, tenants repositories.TenantRepository, logger *zap.Logger) *BootstrapService {
	return &BootstrapService{
		txManager: txManager,
		users:     users,
		tenants:   tenants,
		logger:    logger,
	}
}

// AssignTenant finds or creates the tenant named tenantName and assigns it to
// the parking_admin with adminEmail, in one transaction.
func (s *BootstrapService) AssignTenant(ctx context.Context, adminEmail, tenantName string) (*TenantAssignment, error) {
	email := utils.NormalizeEmail(adminEmail)
	name := strings.TrimSpace(tenantName)
	if err := utils.ValidateRequired(email, "admin_email"); err != nil {
		return nil, ErrInvalidInput.Because(err).WithDetail("admin_email", err.Error())
	}
	if err := utils.ValidateStringLength(name, "tenant_name", 1, 160); err != nil {
		return nil, ErrInvalidInput.Because(err).WithDetail("tenant_name", err.Error())
	}

	result, err := WithTransactionResult(ctx, s.txManager, func(ctx context.Context, tx repositories.Transaction) (*TenantAssignment, error) {
		tenants := s.tenants.WithTx(tx)
		users := s.users.WithTx(tx)

		tenant, err := s.findOrCreateTenant(ctx, tenants, name)
		if err != nil {
			return nil, err
		}

		user, err := users.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, ErrDatabaseError.Because(err)
		}
		if !user.HasRole(models.RoleTenantAdmin) {
			return nil, ErrNotTenantAdmin
		}

		if err := users.AssignTenant(ctx, user.ID, tenant.ID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, ErrDatabaseError.Because(err)
		}

		return &TenantAssignment{
			AdminEmail: user.Email,
			TenantID:   tenant.ID,
			TenantName: tenant.Name,
		}, nil
	})
	if err != nil {
		var domainErr *DomainError
		if !errors.As(err, &domainErr) {
			s.logger.Error("tenant assignment failed", zap.Error(err))
			return nil, ErrTransactionFailed.Because(err)
		}
		return nil, err
	}

	s.logger.Info("tenant assigned to parking admin",
		zap.Int64("tenant_id", result.TenantID),
		zap.String("tenant_name", result.TenantName))

	return result, nil
}

func (s *BootstrapService) findOrCreateTenant(ctx context.Context, tenants repositories.TenantRepository, name string) (*models.Tenant, error) {
	tenant, err := tenants.GetByName(ctx, name)
	if err == nil {
		return tenant, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrDatabaseError.Because(err)
	}

	tenant = models.NewTenant(name)
	if err := tenants.Create(ctx, tenant); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// The failed insert aborts the transaction, so the caller retries.
			return nil, WrapError(ErrorTypeConflict, "Tenant was created concurrently, retry", err)
		}
		return nil, ErrDatabaseError.Because(err)
	}
	return tenant, nil
}
