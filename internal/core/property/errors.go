package property

import (
	"fmt"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/replicated"
)

// OutOfRangeError reports a property key outside the owning schema.
type OutOfRangeError struct {
	Key   Key
	Count Key
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("property key %d out of schema range (count %d)", e.Key, e.Count)
}

// SchemaTypeMismatchError reports a Set whose value kind does not match the
// kind the schema declares for the key. The store is left unchanged.
type SchemaTypeMismatchError struct {
	Key      Key
	Expected replicated.Kind
	Actual   replicated.Kind
}

func (e *SchemaTypeMismatchError) Error() string {
	return fmt.Sprintf("property key %d expects %s but got %s", e.Key, e.Expected, e.Actual)
}
