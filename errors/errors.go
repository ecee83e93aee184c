// Package errors provides a const-declarable error type used for the sentinel errors of lintconfig,
// plus thin wrappers over the standard library so callers only import one errors package.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Separator splits an Error's own message from the message of the cause it wraps.
const Separator = " -- "

// Error is a string based error so packages can declare their sentinels as constants:
//
//	const ErrUnknownPreset = errors.Error("unknown preset")
type Error string

func (s Error) Error() string {
	return string(s)
}

// Is reports whether target is this Error, either directly or as the head of a wrapped message.
func (s Error) Is(target error) bool {
	if target == nil {
		return false
	}
	msg := target.Error()
	return msg == string(s) || strings.HasPrefix(msg, string(s)+Separator)
}

// Wrap attaches cause to this Error. The result matches this Error with errors.Is and unwraps to cause.
func (s Error) Wrap(cause error) error {
	return wrappedError{msg: string(s), cause: cause}
}

// Wrapf attaches a formatted detail message to this Error.
func (s Error) Wrapf(format string, args ...any) error {
	return wrappedError{msg: string(s), cause: fmt.Errorf(format, args...)}
}

type wrappedError struct {
	msg   string
	cause error
}

func (w wrappedError) Error() string {
	if w.cause != nil {
		return w.msg + Separator + w.cause.Error()
	}
	return w.msg
}

func (w wrappedError) Is(target error) bool {
	return Error(w.msg).Is(target)
}

func (w wrappedError) Unwrap() error {
	return w.cause
}

// Is checks if err is equivalent to target.
func Is(err error, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns a new error with the specified message.
func New(message string) error {
	return errors.New(message)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// UnwrapErrors flattens a joined error into its parts. A plain error is returned as a single element slice.
func UnwrapErrors(err error) []error {
	if err == nil {
		return nil
	}

	if je, ok := err.(interface{ Unwrap() []error }); ok {
		return je.Unwrap()
	}
	return []error{err}
}
