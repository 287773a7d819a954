package property

import (
	"fmt"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/replicated"
)

// Key is a small integer index into a component's fixed property schema.
// Keys are stable across versions: new keys append at the end, and retired
// slots stay reserved rather than being renumbered.
type Key = uint32

// Slot declares one property key: its expected kind and the canonical value
// a freshly constructed store holds for it. A reserved slot keeps its index
// for future reuse and carries KindInvalid.
type Slot struct {
	Kind    replicated.Kind
	Default replicated.Value
}

// Schema is the fixed, ordered key table for one component kind. Keys run
// contiguously from 0 to Count()-1.
type Schema struct {
	name  string
	slots []Slot
}

// NewSchema builds a schema from slots ordered by key. Slots whose Default
// is Invalid but whose Kind is not receive the kind default, so a store
// never starts with an unset non-reserved key.
func NewSchema(name string, slots []Slot) *Schema {
	owned := make([]Slot, len(slots))
	copy(owned, slots)
	for i := range owned {
		if owned[i].Kind != replicated.KindInvalid && owned[i].Default.Kind() == replicated.KindInvalid {
			owned[i].Default = replicated.DefaultOf(owned[i].Kind)
		}
	}
	return &Schema{name: name, slots: owned}
}

// Reserved is the slot left in place of a retired key.
func Reserved() Slot {
	return Slot{Kind: replicated.KindInvalid, Default: replicated.Invalid()}
}

func (s *Schema) Name() string { return s.name }

// Count is the number of declared keys, including reserved slots.
func (s *Schema) Count() Key { return Key(len(s.slots)) }

// KindOf returns the declared kind for an in-range key.
func (s *Schema) KindOf(key Key) (replicated.Kind, error) {
	if key >= s.Count() {
		return replicated.KindInvalid, &OutOfRangeError{Key: key, Count: s.Count()}
	}
	return s.slots[key].Kind, nil
}

// DefaultOf returns the construction default for an in-range key.
func (s *Schema) DefaultOf(key Key) (replicated.Value, error) {
	if key >= s.Count() {
		return replicated.Invalid(), &OutOfRangeError{Key: key, Count: s.Count()}
	}
	return s.slots[key].Default, nil
}

func (s *Schema) validate(key Key, value replicated.Value) error {
	if key >= s.Count() {
		return &OutOfRangeError{Key: key, Count: s.Count()}
	}
	slot := s.slots[key]
	if slot.Kind == replicated.KindInvalid {
		return fmt.Errorf("property key %d of %s is reserved", key, s.name)
	}
	if value.Kind() != slot.Kind {
		return &SchemaTypeMismatchError{Key: key, Expected: slot.Kind, Actual: value.Kind()}
	}
	return nil
}
