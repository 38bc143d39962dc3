package domain

import "errors"

// Error kinds surfaced to API callers. Services wrap them with context via
// fmt.Errorf("...: %w", ...) and the HTTP layer maps them with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrVotingTimeIsOut    = errors.New("voting time is out")
	ErrDataConflict       = errors.New("data conflict")
	ErrWrongRequest       = errors.New("wrong request")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
)

// ErrorType is the machine-readable kind rendered in error responses.
type ErrorType string

const (
	ErrorTypeApp             ErrorType = "APP_ERROR"
	ErrorTypeNotFound        ErrorType = "DATA_NOT_FOUND"
	ErrorTypeVotingTimeIsOut ErrorType = "VOTING_TIME_IS_OUT"
	ErrorTypeDataError       ErrorType = "DATA_ERROR"
	ErrorTypeValidation      ErrorType = "VALIDATION_ERROR"
	ErrorTypeWrongRequest    ErrorType = "WRONG_REQUEST"
	ErrorTypeUnauthenticated ErrorType = "UNAUTHENTICATED"
	ErrorTypeForbidden       ErrorType = "FORBIDDEN"
)
