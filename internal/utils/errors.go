package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrNotFound               = errors.New("not_found")
	ErrNotOwner               = errors.New("not_owner")
	ErrRowVersionConflict     = errors.New("row_version_conflict")
	ErrExternalServiceFailure = errors.New("external_service_failure")
	ErrNoRowsUpdated          = errors.New("no_rows_updated")
	ErrTemplateNotFound       = errors.New("template_not_found")
	ErrAttachmentNotFound     = errors.New("attachment_not_found")
)

// AppError carries an HTTP status and public code from the service
// layer up to the controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
