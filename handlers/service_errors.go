package handlers

import (
	"errors"
	"net/http"

	"github.com/nexohub/nexohub-api/services"
	"github.com/nexohub/nexohub-api/utils"
	"go.uber.org/zap"
)

// publicMessage returns the caller-safe message of a domain error.
// The wrapped cause is never written to the response.
func publicMessage(err error, fallback string) string {
	var domainErr *services.DomainError
	if errors.As(err, &domainErr) && domainErr.Message != "" {
		return domainErr.Message
	}
	return fallback
}

// HandleServiceError maps domain errors to HTTP responses
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	details := services.GetErrorDetails(err)
	if len(details) == 0 {
		details = nil
	}

	var writeErr error
	switch {
	case services.IsNotFoundError(err):
		writeErr = utils.WriteNotFound(w, publicMessage(err, "Not found"))

	case services.IsValidationError(err),
		services.IsBadRequestError(err),
		services.IsPolicyViolationError(err):
		writeErr = utils.WriteBadRequest(w, publicMessage(err, "Bad request"), details)

	case services.IsUnauthorizedError(err):
		logger.Debug("request unauthorized", zap.Error(err))
		writeErr = utils.WriteUnauthorized(w, publicMessage(err, services.ErrUnauthorized.Message))

	case services.IsForbiddenError(err):
		writeErr = utils.WriteForbidden(w, publicMessage(err, services.ErrForbidden.Message))

	case services.IsConflictError(err):
		writeErr = utils.WriteConflict(w, publicMessage(err, "Conflict"), details)

	case services.IsInternalError(err):
		// Log internal errors but return generic message
		logger.Error("internal server error", zap.Error(err))
		writeErr = utils.WriteInternalServerError(w, "An internal error occurred")

	default:
		logger.Error("unhandled error type",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		writeErr = utils.WriteInternalServerError(w, "An unexpected error occurred")
	}

	if writeErr != nil {
		logger.Error("failed to write error response", zap.Error(writeErr))
	}
}

// HandleValidationError handles validation errors from request parsing
func HandleValidationError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if utils.IsValidationError(err) {
		fields := utils.GetValidationFields(err)
		details := make(map[string]interface{}, len(fields))
		for k, v := range fields {
			details[k] = v
		}
		if err := utils.WriteBadRequest(w, "Validation failed", details); err != nil {
			logger.Error("failed to write validation error response", zap.Error(err))
		}
		return
	}

	if err := utils.WriteBadRequest(w, err.Error(), nil); err != nil {
		logger.Error("failed to write validation error response", zap.Error(err))
	}
}
