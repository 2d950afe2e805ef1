package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nexohub/nexohub-api/middleware"
	"github.com/nexohub/nexohub-api/models"
	"github.com/nexohub/nexohub-api/services"
	"github.com/nexohub/nexohub-api/utils"
	"go.uber.org/zap"
)

// ParkingLotManager is the tenant-scoped parking lot API of the service layer
type ParkingLotManager interface {
	Create(ctx context.Context, scope services.TenantScope, in services.CreateParkingLotInput) (*models.ParkingLot, error)
	List(ctx context.Context, scope services.TenantScope) ([]*models.ParkingLot, error)
	Update(ctx context.Context, scope services.TenantScope, id int64, patch models.ParkingLotPatch) (*models.ParkingLot, error)
	Delete(ctx context.Context, scope services.TenantScope, id int64) error
}

// CreateParkingLotRequest is the body of POST /api/v1/parking-lots
type CreateParkingLotRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=160"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=220"`
	City     *string `json:"city,omitempty" validate:"omitempty,max=120"`
	Capacity int     `json:"capacity" validate:"gte=0"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// UpdateParkingLotRequest is the body of PUT /api/v1/parking-lots/{lotID}.
// Omitted fields are left unchanged.
type UpdateParkingLotRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=160"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=220"`
	City     *string `json:"city,omitempty" validate:"omitempty,max=120"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,gte=0"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ParkingLotHandler serves tenant-scoped parking lot CRUD.
// Routes mount it behind RequireAuth and RequireTenantScope.
type ParkingLotHandler struct {
	lots   ParkingLotManager
	logger *zap.Logger
}

// NewParkingLotHandler creates a new ParkingLotHandler
func NewParkingLotHandler(lots ParkingLotManager, logger *zap.Logger) *ParkingLotHandler {
	return &ParkingLotHandler{
		lots:   lots,
		logger: logger,
	}
}

// HandleCreate handles POST /api/v1/parking-lots
func (h *ParkingLotHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}

	var req CreateParkingLotRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	lot, err := h.lots.Create(r.Context(), scope, services.CreateParkingLotInput{
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		Capacity: req.Capacity,
		IsActive: req.IsActive,
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, lot)
}

// HandleList handles GET /api/v1/parking-lots
func (h *ParkingLotHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}

	lots, err := h.lots.List(r.Context(), scope)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, lots)
}

// HandleUpdate handles PUT /api/v1/parking-lots/{lotID}
func (h *ParkingLotHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}
	id, ok := lotID(w, r)
	if !ok {
		return
	}

	var req UpdateParkingLotRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	lot, err := h.lots.Update(r.Context(), scope, id, models.ParkingLotPatch{
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		Capacity: req.Capacity,
		IsActive: req.IsActive,
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, lot)
}

// HandleDelete handles DELETE /api/v1/parking-lots/{lotID}
func (h *ParkingLotHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}
	id, ok := lotID(w, r)
	if !ok {
		return
	}

	if err := h.lots.Delete(r.Context(), scope, id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	utils.WriteNoContent(w)
}

func (h *ParkingLotHandler) scope(w http.ResponseWriter, r *http.Request) (services.TenantScope, bool) {
	scope, ok := middleware.GetTenantScope(r.Context())
	if !ok {
		h.logger.Error("parking lot route reached without tenant scope",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())))
		_ = utils.WriteUnauthorized(w, services.ErrUnauthorized.Message)
		return services.TenantScope{}, false
	}
	return scope, true
}

func lotID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "lotID"), 10, 64)
	if err != nil || id <= 0 {
		_ = utils.WriteBadRequest(w, "invalid parking lot id", nil)
		return 0, false
	}
	return id, true
}
