package httpx

import (
	"errors"
	"net/http"
	"time"

	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/gin-gonic/gin"
)

// ErrorBody is the fixed JSON envelope every error response carries.
type ErrorBody struct {
	Timestamp   time.Time              `json:"timestamp"`
	Status      int                    `json:"status"`
	Error       string                 `json:"error"`
	Message     string                 `json:"message"`
	Path        string                 `json:"path"`
	Details     map[string]interface{} `json:"details,omitempty"`
	FieldErrors []FieldError           `json:"fieldErrors,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type FieldError struct {
	Field         string      `json:"field"`
	RejectedValue interface{} `json:"rejectedValue"`
	Message       string      `json:"message"`
}

var statusByKind = map[apperr.Kind]int{
	apperr.KindNotFound:                 http.StatusNotFound,
	apperr.KindDuplicateEmail:           http.StatusConflict,
	apperr.KindDuplicateFeedback:        http.StatusConflict,
	apperr.KindSchedulingConflict:       http.StatusConflict,
	apperr.KindValidationError:          http.StatusBadRequest,
	apperr.KindMalformedRequest:         http.StatusBadRequest,
	apperr.KindMissingParameter:         http.StatusBadRequest,
	apperr.KindTypeMismatch:             http.StatusBadRequest,
	apperr.KindIllegalTransition:        http.StatusUnprocessableEntity,
	apperr.KindNoOpTransition:           http.StatusUnprocessableEntity,
	apperr.KindForbidden:                http.StatusForbidden,
	apperr.KindPayloadTooLarge:          http.StatusRequestEntityTooLarge,
	apperr.KindExternalServiceUnavailable: http.StatusServiceUnavailable,
	apperr.KindInternal:                 http.StatusInternalServerError,
}

// RespondError is the single central error-to-HTTP translator: every
// handler funnels failures through this function instead of mapping
// status codes itself.
func RespondError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal("internal error", err)
	}

	status, ok := statusByKind[appErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	body := ErrorBody{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     string(appErr.Kind),
		Message:   appErr.Message,
		Path:      c.Request.URL.Path,
		Details:   appErr.Details,
	}
	for _, fe := range appErr.FieldErrors {
		body.FieldErrors = append(body.FieldErrors, FieldError{
			Field:         fe.Field,
			RejectedValue: fe.RejectedValue,
			Message:       fe.Message,
		})
	}

	c.AbortWithStatusJSON(status, body)
}
