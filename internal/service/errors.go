package service

import "errors"

// Error kinds. Every error a service returns on purpose unwraps to one of
// these; anything else is an unexpected server error.
var (
	ErrValidation     = errors.New("validation error")
	ErrConflict       = errors.New("conflict")
	ErrAuth           = errors.New("authentication failed")
	ErrForbiddenToken = errors.New("invalid token")
	ErrNotFound       = errors.New("not found")
	ErrDispatch       = errors.New("dispatch failed")
)

// Error is a domain error with a client-facing message.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

var (
	ErrMissingCredentials = newError(ErrValidation, "email and password are required")
	ErrEmailTaken         = newError(ErrConflict, "email is already in use")
	ErrPasswordTooLong    = newError(ErrValidation, "password must be at most 72 bytes")
	ErrInvalidCredentials = newError(ErrAuth, "invalid email or password")
	ErrUserNotFound       = newError(ErrNotFound, "user not found")

	ErrMissingResultData = newError(ErrValidation, "required data is missing")
	ErrInvalidAnswers    = newError(ErrValidation, "answers must be a non-empty list")
	ErrResultNotFound    = newError(ErrNotFound, "result not found")

	ErrMissingConsultationData = newError(ErrValidation, "required information is missing")
	ErrInvalidPhone            = newError(ErrValidation, "please enter a valid phone number")
	ErrInvalidDate             = newError(ErrValidation, "please enter a valid date (YYYY-MM-DD)")
	ErrPastDate                = newError(ErrValidation, "please choose today or a later date")
	ErrInvalidStatus           = newError(ErrValidation, "please enter a valid status")
	ErrConsultationNotFound    = newError(ErrNotFound, "consultation not found")

	ErrMissingMailData         = newError(ErrValidation, "email, constitution and petName are required")
	ErrUnsupportedConstitution = newError(ErrValidation, "unsupported constitution")
)

// DispatchError wraps a mail transport failure.
type DispatchError struct {
	Err error
}

func (e *DispatchError) Error() string {
	return "failed to send email: " + e.Err.Error()
}

func (e *DispatchError) Unwrap() []error { return []error{ErrDispatch, e.Err} }

// Cause is the transport's own message.
func (e *DispatchError) Cause() string { return e.Err.Error() }
