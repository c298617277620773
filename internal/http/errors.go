package httpx

import (
	"net/http"

	apperrors "github.com/salonhub/salonhub-api/internal/errors"
)

// WriteServiceError maps an application error onto the HTTP error taxonomy
// and writes the JSON body. Validation errors carry the offending field and
// structured details (e.g. {current, limit} on capacity violations) so the
// client can render them without parsing the message.
func WriteServiceError(w http.ResponseWriter, err error) {
	status, errCode := statusForError(err)

	body := map[string]any{
		"error":   errCode,
		"message": err.Error(),
	}
	if field := apperrors.GetField(err); field != "" {
		body["field"] = field
	}
	if details := apperrors.GetDetails(err); details != nil {
		body["details"] = details
	}
	WriteJSON(w, status, body)
}

func statusForError(err error) (status int, errCode string) {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeUnauthenticated:
		return http.StatusUnauthorized, "authentication_required"
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden, "insufficient_permissions"
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound, "not_found"
	case apperrors.ErrCodeConflict:
		return http.StatusConflict, "conflict"
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest, "validation_failed"
	case apperrors.ErrCodeDuplicateEmployeeEmail:
		return http.StatusBadRequest, "duplicate_employee_email"
	case apperrors.ErrCodeUserEmailExists:
		return http.StatusBadRequest, "user_email_exists"
	case apperrors.ErrCodeForeignKey:
		return http.StatusConflict, "resource_in_use"
	case apperrors.ErrCodeUpstream:
		return http.StatusBadGateway, "upstream_failed"
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, "timeout"
	case apperrors.ErrCodeCanceled:
		return http.StatusServiceUnavailable, "canceled"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
