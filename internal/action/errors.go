package action

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies request failures
type Kind int

const (
	// InvalidRequest is a malformed payload or unknown discriminant value.
	InvalidRequest Kind = iota
	// UnknownCommand is voice text that matched no rule.
	UnknownCommand
	// ExecutionFailure is an injection call or process spawn that failed.
	ExecutionFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidRequest:
		return "invalid request"
	case UnknownCommand:
		return "unknown command"
	case ExecutionFailure:
		return "execution failure"
	}
	return "unknown"
}

// Error is a classified failure. Msg is what the remote client sees.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Invalid returns an InvalidRequest error
func Invalid(format string, args ...any) *Error {
	return &Error{Kind: InvalidRequest, Msg: fmt.Sprintf(format, args...)}
}

// Unknown returns an UnknownCommand error
func Unknown(format string, args ...any) *Error {
	return &Error{Kind: UnknownCommand, Msg: fmt.Sprintf(format, args...)}
}

// Failed wraps err as an ExecutionFailure. The message carries err's text.
func Failed(err error, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	return &Error{Kind: ExecutionFailure, Msg: msg, Err: err}
}

// KindOf returns the classification of err. Unclassified errors count as
// execution failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ExecutionFailure
}

// HTTPStatus maps err to the status code returned to the client.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case InvalidRequest, UnknownCommand:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
