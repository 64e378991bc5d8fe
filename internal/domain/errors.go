package domain

// APIError is the JSON error body. Kind carries the stable lifecycle error
// code (e.g. PENDING_EXISTS) when the failure came from the lifecycle core.
type APIError struct {
	Type      string            `json:"type"`
	Kind      string            `json:"kind,omitempty"`
	Title     string            `json:"title"`
	Status    int               `json:"status"`
	Detail    string            `json:"detail,omitempty"`
	Current   interface{}       `json:"current,omitempty"`
	Requested interface{}       `json:"requested,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// ValidationMessages maps validator tags to user-friendly messages
var ValidationMessages = map[string]string{
	"required":   "This field is required",
	"max":        "Exceeds maximum length",
	"min":        "Below minimum length",
	"gte":        "Must be greater than or equal to minimum value",
	"gt":         "Must be greater than minimum value",
	"lte":        "Must be less than or equal to maximum value",
	"lt":         "Must be less than maximum value",
	"gtefield":   "Must be greater than or equal to the related field",
	"oneof":      "Must be one of the allowed values",
	"startswith": "Must start with the specified value",
	"dive":       "Contains an invalid element",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "Validation failed: " + tag
}

// Error types, after RFC 7807 problem details
const (
	ErrorTypeValidation         = "validation_error"
	ErrorTypeNotFound           = "not_found"
	ErrorTypeBadRequest         = "bad_request"
	ErrorTypeConflict           = "conflict"
	ErrorTypeUnauthorized       = "unauthorized"
	ErrorTypeForbidden          = "forbidden"
	ErrorTypeUnprocessable      = "unprocessable"
	ErrorTypeRequestTooLarge    = "request_too_large"
	ErrorTypeServiceUnavailable = "service_unavailable"
	ErrorTypeRateLimited        = "rate_limited"
	ErrorTypeInternal           = "internal_error"
)
