package replicated

import "fmt"

// TypeMismatchError reports access to a Value through an accessor of the
// wrong kind. It carries both sides so callers can log or assert on them.
type TypeMismatchError struct {
	Expected Kind
	Actual   Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("replicated value type mismatch: expected %s but found %s", e.Expected, e.Actual)
}

func newMismatch(expected, actual Kind) error {
	return &TypeMismatchError{Expected: expected, Actual: actual}
}
