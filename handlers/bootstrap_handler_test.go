package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nexohub/nexohub-api/services"
	"github.com/nexohub/nexohub-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const assignPath = "/api/v1/bootstrap/assign-tenant-to-parking-admin"

func TestBootstrapHandler_HandleAssignTenant(t *testing.T) {
	logger := zap.NewNop()

	t.Run("assigns tenant", func(t *testing.T) {
		assigner := new(MockTenantAssigner)
		assigner.On("AssignTenant", mock.Anything, "admin@example.com", "Centro").
			Return(&services.TenantAssignment{AdminEmail: "admin@example.com", TenantID: 5, TenantName: "Centro"}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, assignPath+"?admin_email=admin@example.com&tenant_name=Centro", nil)
		NewBootstrapHandler(assigner, logger).HandleAssignTenant(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response struct {
			Data services.TenantAssignment `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, int64(5), response.Data.TenantID)
		assert.Equal(t, "Centro", response.Data.TenantName)
		assigner.AssertExpectations(t)
	})

	t.Run("missing query parameters", func(t *testing.T) {
		assigner := new(MockTenantAssigner)

		w := httptest.NewRecorder()
		NewBootstrapHandler(assigner, logger).HandleAssignTenant(w, httptest.NewRequest(http.MethodPost, assignPath, nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response utils.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Contains(t, response.Details, "admin_email")
		assert.Contains(t, response.Details, "tenant_name")
		assigner.AssertNotCalled(t, "AssignTenant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("service errors are mapped", func(t *testing.T) {
		tests := []struct {
			err     error
			status  int
			message string
		}{
			{services.ErrUserNotFound, http.StatusNotFound, "User not found"},
			{services.ErrNotTenantAdmin, http.StatusBadRequest, "User is not parking_admin"},
		}

		for _, tt := range tests {
			assigner := new(MockTenantAssigner)
			assigner.On("AssignTenant", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, assignPath+"?admin_email=x@example.com&tenant_name=Centro", nil)
			NewBootstrapHandler(assigner, logger).HandleAssignTenant(w, req)

			assert.Equal(t, tt.status, w.Code)
			var response utils.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.message, response.Message)
		}
	})
}
