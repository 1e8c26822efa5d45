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
	FAILED_REQUEST  ErrCode = "REQUEST_FAILED"
	BAD_REQUEST     ErrCode = "FAILED_TO_DECODE"
	MISSING_FIELD   ErrCode = "MISSING_FIELD"
	UNAUTHENTICATED ErrCode = "UNAUTHENTICATED"
	NOT_FOUND       ErrCode = "NOT_FOUND"
	LOCKED          ErrCode = "LOCKED"
	CONFLICT        ErrCode = "CONFLICT"
)

var (
	ErrBadRequest      = errors.New("bad request")
	ErrMissingField    = errors.New("required field is missing")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("resource not found")
	ErrLocked          = errors.New("resource is locked")
	ErrConflict        = errors.New("conflict")
)

func Error(code, msg string) Response {
	return Response{
		ResponseError: ResponseError{
			Code:    code,
			Message: msg,
		},
	}
}
