package fetch

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation.
type Kind string

const (
	KindValidation            Kind = "validation"
	KindDependencyUnavailable Kind = "dependency_unavailable"
	KindTimeout               Kind = "timeout"
	KindTransport             Kind = "transport"
	KindUpstream              Kind = "upstream"
)

// Error is the structured failure carried by an error Result.
type Error struct {
	Kind       Kind
	Message    string
	Details    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Invalid builds a validation failure. Validation always happens before any
// cache or network access.
func Invalid(format string, args ...any) Result {
	return Failure(&Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)})
}

// Failure wraps err as an error Result.
func Failure(err *Error) Result {
	return Result{
		Status:     StatusError,
		Message:    err.Message,
		Details:    err.Details,
		Kind:       err.Kind,
		StatusCode: err.StatusCode,
		Err:        err,
	}
}

// AsError unwraps err into an *Error. Anything else is reported as a
// transport failure.
func AsError(err error) *Error {
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}
	return &Error{Kind: KindTransport, Message: err.Error(), Err: err}
}
