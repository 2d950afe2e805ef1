package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/nexohub/nexohub-api/utils"
	"go.uber.org/zap"
)

const readinessTimeout = 5 * time.Second

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthChecker reports whether the record store can serve queries
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler handles liveness and readiness probes
type HealthHandler struct {
	db      HealthChecker
	service string
	logger  *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. db may be nil.
func NewHealthHandler(db HealthChecker, service string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		service: service,
		logger:  logger,
	}
}

// HandleHealth handles GET /health.
// Returns 200 while the process is serving.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, HealthResponse{
		Status:    "ok",
		Service:   h.service,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleReadiness handles GET /health/ready.
// Returns 503 when the record store cannot be reached.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	checks := make(map[string]string)
	status, httpStatus := "ok", http.StatusOK

	switch err := h.checkDatabase(ctx); {
	case h.db == nil:
		checks["database"] = "not_configured"
		status, httpStatus = "unavailable", http.StatusServiceUnavailable
	case err != nil:
		h.logger.Warn("database readiness check failed", zap.Error(err))
		checks["database"] = "unhealthy"
		status, httpStatus = "unavailable", http.StatusServiceUnavailable
	default:
		checks["database"] = "healthy"
	}

	response := HealthResponse{
		Status:    status,
		Service:   h.service,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}

	if err := utils.WriteJSON(w, httpStatus, utils.SuccessResponse{Data: response}); err != nil {
		h.logger.Error("failed to write readiness response", zap.Error(err))
	}
}

func (h *HealthHandler) checkDatabase(ctx context.Context) error {
	if h.db == nil {
		return nil
	}
	return h.db.HealthCheck(ctx)
}
