package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/nexohub/nexohub-api/middleware"
	"github.com/nexohub/nexohub-api/models"
	"github.com/nexohub/nexohub-api/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockParkingLotManager is a mock implementation of ParkingLotManager
type MockParkingLotManager struct {
	mock.Mock
}

func (m *MockParkingLotManager) Create(ctx context.Context, scope services.TenantScope, in services.CreateParkingLotInput) (*models.ParkingLot, error) {
	args := m.Called(ctx, scope, in)
	if lot := args.Get(0); lot != nil {
		return lot.(*models.ParkingLot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockParkingLotManager) List(ctx context.Context, scope services.TenantScope) ([]*models.ParkingLot, error) {
	args := m.Called(ctx, scope)
	if lots := args.Get(0); lots != nil {
		return lots.([]*models.ParkingLot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockParkingLotManager) Update(ctx context.Context, scope services.TenantScope, id int64, patch models.ParkingLotPatch) (*models.ParkingLot, error) {
	args := m.Called(ctx, scope, id, patch)
	if lot := args.Get(0); lot != nil {
		return lot.(*models.ParkingLot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockParkingLotManager) Delete(ctx context.Context, scope services.TenantScope, id int64) error {
	args := m.Called(ctx, scope, id)
	return args.Error(0)
}

// MockTenantAssigner is a mock implementation of TenantAssigner
type MockTenantAssigner struct {
	mock.Mock
}

func (m *MockTenantAssigner) AssignTenant(ctx context.Context, adminEmail, tenantName string) (*services.TenantAssignment, error) {
	args := m.Called(ctx, adminEmail, tenantName)
	if result := args.Get(0); result != nil {
		return result.(*services.TenantAssignment), args.Error(1)
	}
	return nil, args.Error(1)
}

// withScope attaches a principal and tenant scope for tenantID to req
func withScope(t *testing.T, req *http.Request, tenantID int64) (*http.Request, services.TenantScope) {
	t.Helper()
	admin := models.NewUser("admin@example.com", "hash", models.RoleTenantAdmin)
	admin.ID = 1
	admin.TenantID = &tenantID

	scope, err := services.NewAuthorizer().ScopeToTenant(admin, models.RoleTenantAdmin)
	require.NoError(t, err)

	ctx := middleware.WithPrincipal(req.Context(), admin)
	ctx = middleware.WithTenantScope(ctx, scope)
	return req.WithContext(ctx), scope
}

// withURLParam sets a chi route parameter on req
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
