package wire

import "fmt"

// ShapeError reports a wire message or item whose arity or node kinds do
// not match the required layout. It aborts decoding of the current message
// only; the transport loop carries on.
type ShapeError struct {
	Field  string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("malformed wire shape at %s: %s", e.Field, e.Reason)
}

// NewShapeError builds a ShapeError naming the offending field.
func NewShapeError(field, format string, args ...any) error {
	return &ShapeError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

type kindError struct {
	want Kind
	got  Kind
}

func (e *kindError) Error() string {
	return fmt.Sprintf("expected %s but found %s", e.want, e.got)
}

func shapeMismatch(want, got Kind) error {
	return &kindError{want: want, got: got}
}
