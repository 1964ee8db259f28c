package nport

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are generic codes that the transport edges map to their own
// vocabularies (HTTP status codes, CLI exit codes). Internal layers
// attach them with Errorf and the edges read them with ErrorCode.
const (
	EFETCH      = "fetch_failed" // mandatory upstream fetch failed
	EINTERNAL   = "internal"     // unexpected internal error
	EINVALID    = "invalid"      // validation failed on caller input
	ENOTFOUND   = "not_found"    // entity does not exist
	EUNPARSABLE = "unparsable"   // document yielded no extractable data
	EUPSTREAM   = "upstream"     // upstream returned a malformed payload
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract the code and message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("nport error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf returns an Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
