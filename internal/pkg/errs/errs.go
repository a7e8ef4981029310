// Package errs is a thin seam over cockroachdb/errors so the rest of the
// codebase never imports it directly.
package errs

import (
	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Is(err, target error) bool {
	return cr.Is(err, target)
}

// Mark attaches markErr as an errors.Is target while keeping err's message
// and chain. cr.Mark alone hides the mark from the standard library's
// errors.Is, so the mark is placed in the stdlib unwrap chain instead.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return &marked{cause: err, mark: markErr}
}

type marked struct {
	cause error
	mark  error
}

func (m *marked) Error() string {
	return m.cause.Error()
}

func (m *marked) Unwrap() []error {
	return []error{m.cause, m.mark}
}
