package services

import (
	"context"
	"testing"
	"time"

	"github.com/nexohub/nexohub-api/models"
	"github.com/nexohub/nexohub-api/repositories"
	"github.com/nexohub/nexohub-api/security"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) AssignTenant(ctx context.Context, userID, tenantID int64) error {
	args := m.Called(ctx, userID, tenantID)
	return args.Error(0)
}

func (m *MockUserRepository) WithTx(tx repositories.Transaction) repositories.UserRepository {
	return m
}

// MockTenantRepository is a mock implementation of TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByName(ctx context.Context, name string) (*models.Tenant, error) {
	args := m.Called(ctx, name)
	if tenant := args.Get(0); tenant != nil {
		return tenant.(*models.Tenant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTenantRepository) WithTx(tx repositories.Transaction) repositories.TenantRepository {
	return m
}

// MockParkingLotRepository is a mock implementation of ParkingLotRepository
type MockParkingLotRepository struct {
	mock.Mock
}

func (m *MockParkingLotRepository) Create(ctx context.Context, lot *models.ParkingLot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockParkingLotRepository) ListByTenant(ctx context.Context, tenantID int64) ([]*models.ParkingLot, error) {
	args := m.Called(ctx, tenantID)
	if lots := args.Get(0); lots != nil {
		return lots.([]*models.ParkingLot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockParkingLotRepository) GetByIDForTenant(ctx context.Context, id, tenantID int64) (*models.ParkingLot, error) {
	args := m.Called(ctx, id, tenantID)
	if lot := args.Get(0); lot != nil {
		return lot.(*models.ParkingLot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockParkingLotRepository) Update(ctx context.Context, lot *models.ParkingLot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockParkingLotRepository) Delete(ctx context.Context, id, tenantID int64) error {
	args := m.Called(ctx, id, tenantID)
	return args.Error(0)
}

func (m *MockParkingLotRepository) WithTx(tx repositories.Transaction) repositories.ParkingLotRepository {
	return m
}

// Test helpers

const testSecret = "services-test-secret"

func newTestTokens(t *testing.T, now func() time.Time) *security.TokenService {
	t.Helper()
	opts := []security.TokenOption{}
	if now != nil {
		opts = append(opts, security.WithClock(now))
	}
	tokens, err := security.NewTokenService(security.TokenConfig{
		Secret:    []byte(testSecret),
		Algorithm: "HS256",
		Expiry:    15 * time.Minute,
	}, opts...)
	require.NoError(t, err)
	return tokens
}

func newTestHasher(t *testing.T) *security.Hasher {
	t.Helper()
	hasher, err := security.NewHasherWithCost(bcrypt.MinCost)
	require.NoError(t, err)
	return hasher
}

// newMockTx returns a transaction manager whose single transaction
// expects the given outcome ("Commit" or "Rollback").
func newMockTx(outcome string) (*MockTransactionManager, *MockTransaction) {
	txMgr := new(MockTransactionManager)
	tx := new(MockTransaction)
	txMgr.On("Begin", mock.Anything).Return(tx, nil)
	tx.On(outcome).Return(nil)
	return txMgr, tx
}

func int64Ptr(v int64) *int64 { return &v }

func tenantAdmin(id, tenantID int64) *models.User {
	user := models.NewUser("admin@example.com", "hash", models.RoleTenantAdmin)
	user.ID = id
	if tenantID != 0 {
		user.TenantID = int64Ptr(tenantID)
	}
	return user
}
