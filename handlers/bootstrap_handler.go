package handlers

import (
	"context"
	"net/http"

	"github.com/nexohub/nexohub-api/services"
	"github.com/nexohub/nexohub-api/utils"
	"go.uber.org/zap"
)

// TenantAssigner assigns tenants to tenant administrators
type TenantAssigner interface {
	AssignTenant(ctx context.Context, adminEmail, tenantName string) (*services.TenantAssignment, error)
}

// BootstrapHandler serves the privileged setup endpoints.
// Routes mount it behind middleware.RequireBootstrapToken.
type BootstrapHandler struct {
	assigner TenantAssigner
	logger   *zap.Logger
}

// NewBootstrapHandler creates a new BootstrapHandler
func NewBootstrapHandler(assigner TenantAssigner, logger *zap.Logger) *BootstrapHandler {
	return &BootstrapHandler{
		assigner: assigner,
		logger:   logger,
	}
}

// HandleAssignTenant handles
// POST /api/v1/bootstrap/assign-tenant-to-parking-admin?admin_email=&tenant_name=
func (h *BootstrapHandler) HandleAssignTenant(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	adminEmail := query.Get("admin_email")
	tenantName := query.Get("tenant_name")

	missing := make(map[string]interface{})
	if err := utils.ValidateRequired(adminEmail, "admin_email"); err != nil {
		missing["admin_email"] = err.Error()
	}
	if err := utils.ValidateRequired(tenantName, "tenant_name"); err != nil {
		missing["tenant_name"] = err.Error()
	}
	if len(missing) > 0 {
		_ = utils.WriteBadRequest(w, "Validation failed", missing)
		return
	}

	result, err := h.assigner.AssignTenant(r.Context(), adminEmail, tenantName)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteOK(w, result); err != nil {
		h.logger.Error("failed to write bootstrap response", zap.Error(err))
	}
}
