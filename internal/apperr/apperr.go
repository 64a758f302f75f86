// Package apperr defines the shallow error taxonomy shared by every tool:
// input validation, external dependency and transient operation failures.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error by how a surface should present it.
type Kind int

const (
	KindUnknown    Kind = iota
	KindValidation      // malformed input: static inline message
	KindDependency      // engine missing or failed to load: fatal for the session
	KindTransient       // clipboard denied, read failed: log and move on
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDependency:
		return "dependency"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Error carries a technical cause plus the message shown to the user.
type Error struct {
	Kind    Kind
	Err     error
	UserMsg string
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Predefined errors.
var (
	ErrNotImage = &Error{
		Kind:    KindValidation,
		Err:     errors.New("not an image"),
		UserMsg: "Please upload an image file.",
	}

	ErrEmptyInput = &Error{
		Kind:    KindValidation,
		Err:     errors.New("empty input"),
		UserMsg: "Nothing to process. Paste or type some input first.",
	}

	ErrEngineUnavailable = &Error{
		Kind:    KindDependency,
		Err:     errors.New("re-encode engine unavailable"),
		UserMsg: "The image engine failed to load. Restart the session to try again.",
	}

	ErrSessionClosed = &Error{
		Kind:    KindDependency,
		Err:     errors.New("session closed"),
		UserMsg: "This session has ended.",
	}
)

// Validation wraps err as a validation failure with a user message.
func Validation(err error, userMsg string) *Error {
	return &Error{Kind: KindValidation, Err: err, UserMsg: userMsg}
}

// Validationf builds a validation error whose user message is the
// formatted text itself.
func Validationf(format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{Kind: KindValidation, Err: errors.New(msg), UserMsg: msg}
}

// Dependency wraps err as an external dependency failure.
func Dependency(err error, userMsg string) *Error {
	return &Error{Kind: KindDependency, Err: err, UserMsg: userMsg}
}

// Transient wraps err as a transient operation failure.
func Transient(err error, userMsg string) *Error {
	return &Error{Kind: KindTransient, Err: err, UserMsg: userMsg}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// UserMessage extracts the user-facing message from err.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.UserMsg != "" {
		return e.UserMsg
	}
	return "Something went wrong. Please check your input and try again."
}
