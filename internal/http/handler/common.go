package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/auth"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/service"
	"go.uber.org/zap"
)

var validate = validator.New()

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondValidationError sends a standardized validation error response with specific field messages
func respondValidationError(w http.ResponseWriter, err error) {
	errs := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			errs[toJSONFieldName(fe.Field())] = formatValidationError(fe)
		}
	}

	respondJSON(w, http.StatusBadRequest, domain.APIError{
		Type:   domain.ErrorTypeValidation,
		Kind:   service.ErrInvalidInput.Error(),
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
		Detail: "One or more fields failed validation",
		Errors: errs,
	})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", toJSONFieldName(fe.Field()))
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// toJSONFieldName converts a Go struct field name to its JSON equivalent (camelCase)
func toJSONFieldName(field string) string {
	if len(field) == 0 {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.APIError{
		Type:   getErrorType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: message,
	})
}

// getErrorType returns the appropriate error type for an HTTP status code
func getErrorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrorTypeBadRequest
	case http.StatusUnauthorized:
		return domain.ErrorTypeUnauthorized
	case http.StatusForbidden:
		return domain.ErrorTypeForbidden
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusConflict:
		return domain.ErrorTypeConflict
	case http.StatusUnprocessableEntity:
		return domain.ErrorTypeUnprocessable
	case http.StatusRequestEntityTooLarge:
		return domain.ErrorTypeRequestTooLarge
	case http.StatusServiceUnavailable:
		return domain.ErrorTypeServiceUnavailable
	default:
		return domain.ErrorTypeInternal
	}
}

// statusForKind maps a lifecycle error kind to its HTTP status.
func statusForKind(kind string) int {
	switch kind {
	case service.ErrNotFound.Error():
		return http.StatusNotFound
	case service.ErrForbiddenRole.Error(), service.ErrForbiddenReversal.Error():
		return http.StatusForbidden
	case service.ErrAlreadyTerminal.Error(), service.ErrPendingExists.Error(),
		service.ErrInvalidStateTransition.Error(), service.ErrConflict.Error():
		return http.StatusConflict
	case service.ErrAmountOutOfRange.Error(), service.ErrInvalidInput.Error():
		return http.StatusBadRequest
	case service.ErrAmountMismatch.Error():
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError renders lifecycle errors with their stable kind and
// context. Anything else is logged and reported as a 500 with msg.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	kind := service.KindOf(err)
	if kind == "" {
		logger.Error(msg, append(fields, zap.Error(err))...)
		respondWithError(w, http.StatusInternalServerError, msg)
		return
	}

	status := statusForKind(kind)
	body := domain.APIError{
		Type:   getErrorType(status),
		Kind:   kind,
		Title:  http.StatusText(status),
		Status: status,
		Detail: err.Error(),
	}
	var le *service.LifecycleError
	if errors.As(err, &le) {
		body.Current = le.Current
		body.Requested = le.Requested
	}
	logger.Debug("request rejected", append(fields, zap.String("kind", kind), zap.Error(err))...)
	respondJSON(w, status, body)
}

// actorFrom returns the authenticated caller. It writes a 401 when the
// request carries no identity.
func actorFrom(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok || userCtx.Service {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return domain.Actor{}, false
	}
	return userCtx.Actor(), true
}

func uuidParam(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s ID: must be a valid UUID", label))
		return uuid.Nil, false
	}
	return id, true
}

// decodeBody decodes and validates a JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respondValidationError(w, err)
		return false
	}
	return true
}

func pagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}
	return page, pageSize
}

func paginated(data interface{}, total int64, page, pageSize int) domain.PaginatedResponse {
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}
	return domain.PaginatedResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
