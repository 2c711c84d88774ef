// Package errors re-exports the stdlib errors inspection helpers next to
// the pkg/errors wrapping helpers, so callers need a single import for both.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

// New returns an error with the given text, without a stack trace.
func New(text string) error {
	return stderrors.New(text)
}

// Is reports whether target appears anywhere in err's chain.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain matching target's type.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap peels one layer off err.
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join combines errs into a single error.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// Wrap annotates err with message and records a stack trace.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf is Wrap with a format specifier.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack records a stack trace on err without changing its message.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

// Errorf builds a new error from a format specifier with a stack trace.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}

// Cause walks to the innermost error wrapped by pkg/errors.
//
//nolint:wrapcheck // Passthrough keeps pkg/errors semantics intact.
func Cause(err error) error {
	return pkgerrors.Cause(err)
}
