package auth

import (
	"context"
	"net/http"

	"github.com/nexohub/nexohub-api/handlers"
	"github.com/nexohub/nexohub-api/models"
	"github.com/nexohub/nexohub-api/services"
	"github.com/nexohub/nexohub-api/utils"
	"go.uber.org/zap"
)

// Service registers principals and exchanges credentials for tokens
type Service interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.TokenResult, error)
	Login(ctx context.Context, email, password string) (*services.TokenResult, error)
}

// RegisterRequest is the body of POST /api/v1/auth/register
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=owner_saas parking_admin parking_operator driver"`
}

// LoginRequest is the body of POST /api/v1/auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Handler serves registration and login. Both respond with the bare token
// object so OAuth2-style clients can read access_token at the top level.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new auth handler
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleRegister handles POST /api/v1/auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		handlers.HandleValidationError(w, err, h.logger)
		return
	}
	req.Email = utils.NormalizeEmail(req.Email)
	if err := utils.ValidateStruct(&req); err != nil {
		handlers.HandleValidationError(w, err, h.logger)
		return
	}

	result, err := h.service.Register(r.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     models.UserRole(req.Role),
	})
	if err != nil {
		handlers.HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteJSON(w, http.StatusCreated, result); err != nil {
		h.logger.Error("failed to write register response", zap.Error(err))
	}
}

// HandleLogin handles POST /api/v1/auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		handlers.HandleValidationError(w, err, h.logger)
		return
	}
	req.Email = utils.NormalizeEmail(req.Email)
	if err := utils.ValidateStruct(&req); err != nil {
		handlers.HandleValidationError(w, err, h.logger)
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handlers.HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("failed to write login response", zap.Error(err))
	}
}
