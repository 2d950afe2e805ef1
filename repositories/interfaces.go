package repositories

import (
	"context"
	"errors"

	"github.com/nexohub/nexohub-api/models"
)

var (
	// ErrNotFound is returned when no row matches a lookup
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert violates a unique constraint
	ErrDuplicate = errors.New("duplicate record")
)

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns a context carrying the transaction, so repositories
	// called with it run their statements inside the transaction
	Context() context.Context
}

// UserRepository handles principal data operations
type UserRepository interface {
	// Create inserts user and sets its ID. Returns ErrDuplicate for a taken email.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by numeric ID
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByEmail retrieves a user by normalized email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// AssignTenant sets the tenant of the user
	AssignTenant(ctx context.Context, userID, tenantID int64) error

	// WithTx returns a new repository instance bound to the transaction
	WithTx(tx Transaction) UserRepository
}

// TenantRepository handles tenant data operations
type TenantRepository interface {
	// Create inserts tenant and sets its ID. Returns ErrDuplicate for a taken name.
	Create(ctx context.Context, tenant *models.Tenant) error

	// GetByName retrieves a tenant by its unique name
	GetByName(ctx context.Context, name string) (*models.Tenant, error)

	// WithTx returns a new repository instance bound to the transaction
	WithTx(tx Transaction) TenantRepository
}

// ParkingLotRepository handles parking lot data operations.
// Every read and write is filtered by tenant.
type ParkingLotRepository interface {
	// Create inserts lot and sets its ID
	Create(ctx context.Context, lot *models.ParkingLot) error

	// ListByTenant retrieves the lots of a tenant ordered by ID
	ListByTenant(ctx context.Context, tenantID int64) ([]*models.ParkingLot, error)

	// GetByIDForTenant retrieves a lot only when it belongs to tenantID
	GetByIDForTenant(ctx context.Context, id, tenantID int64) (*models.ParkingLot, error)

	// Update persists the mutable fields of lot within its tenant
	Update(ctx context.Context, lot *models.ParkingLot) error

	// Delete removes a lot only when it belongs to tenantID
	Delete(ctx context.Context, id, tenantID int64) error

	// WithTx returns a new repository instance bound to the transaction
	WithTx(tx Transaction) ParkingLotRepository
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Users       UserRepository
	Tenants     TenantRepository
	ParkingLots ParkingLotRepository
}
