package handlers

import (
	"net/http"

	"github.com/nexohub/nexohub-api/middleware"
	"github.com/nexohub/nexohub-api/utils"
	"go.uber.org/zap"
)

// UserHandler serves the authenticated principal
type UserHandler struct {
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(logger *zap.Logger) *UserHandler {
	return &UserHandler{logger: logger}
}

// HandleMe handles GET /api/v1/users/me
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetPrincipal(r.Context())
	if user == nil {
		_ = utils.WriteUnauthorized(w, "Could not validate credentials")
		return
	}

	if err := utils.WriteOK(w, user); err != nil {
		h.logger.Error("failed to write user response", zap.Error(err))
	}
}
