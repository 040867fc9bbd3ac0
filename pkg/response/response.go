package response

import "errors"

type Response struct {
	ResponseError `json:"error,omitzero"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

//Error Codes
type ErrCode string

var (
	FAILED_REQUEST     ErrCode = "REQUEST_FAILED"
	BAD_REQUEST        ErrCode = "FAILED_TO_DECODE"
	VALIDATION         ErrCode = "VALIDATION_FAILED"
	NOT_FOUND          ErrCode = "NOT_FOUND"
	LOCKED             ErrCode = "LOCKED"
	CONFLICT           ErrCode = "CONFLICT"
	INVALID_TRANSITION ErrCode = "INVALID_TRANSITION"
	NO_SUBJECTS        ErrCode = "NO_SUBJECTS_CONFIGURED"
	MENTOR_KEY         ErrCode = "MENTOR_KEY_UNRESOLVED"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("resource not found")
	ErrLocked              = errors.New("resource is locked")
	ErrConflict            = errors.New("conflict")
	ErrSelfBooking         = errors.New("student and mentor must be different users")
	ErrInvalidTransition   = errors.New("illegal status transition")
	ErrNotConfirmed        = errors.New("cannot finalize a mentorship that was not confirmed")
	ErrNoSubjects          = errors.New("no subjects configured")
	ErrMentorKeyUnresolved = errors.New("no usable mentor key")
)

func Error(code, msg string) Response {
	return Response{
		ResponseError: ResponseError{
			Code:    code,
			Message: msg,
		},
	}
}
