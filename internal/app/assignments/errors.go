package assignments

import "errors"

var (
	// ErrNotFound means no assignment with the given ID exists. It is
	// distinct from the silent no-op of confirming an already confirmed
	// assignment.
	ErrNotFound = errors.New("assignment not found")

	// ErrNotYetDue means the assignment's scheduled date is after today, so
	// confirming it now would record a confirmation date before the date.
	ErrNotYetDue = errors.New("assignment is not due yet")
)
