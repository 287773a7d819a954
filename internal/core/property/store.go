package property

import (
	"sync"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/replicated"
)

// DirtyEntry is one modified property handed to the replication sender.
type DirtyEntry struct {
	Key   Key
	Value replicated.Value
}

// Store holds the replicated properties of one component instance: a
// fixed-size slot array indexed by key plus the set of keys modified since
// the last flush. A single mutex covers both, so Set and TakeDirty are
// mutually exclusive and a flush always observes a consistent snapshot.
type Store struct {
	mu     sync.Mutex
	schema *Schema
	slots  []replicated.Value
	dirty  map[Key]struct{}
}

// NewStore allocates a store with every schema-declared key pre-filled with
// its construction default, so Get never has to special-case "unset".
func NewStore(schema *Schema) *Store {
	slots := make([]replicated.Value, schema.Count())
	for key := Key(0); key < schema.Count(); key++ {
		slots[key], _ = schema.DefaultOf(key)
	}
	return &Store{
		schema: schema,
		slots:  slots,
		dirty:  make(map[Key]struct{}),
	}
}

func (s *Store) Schema() *Schema { return s.schema }

// Get returns the stored value for an in-range key, or Invalid for an
// out-of-range one. Reads never mutate state.
func (s *Store) Get(key Key) replicated.Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key >= Key(len(s.slots)) {
		return replicated.Invalid()
	}
	return s.slots[key]
}

// Set stores value under key and marks the key dirty. The key must be in
// the schema range and the value kind must match the declared kind; on
// failure the store is left unchanged.
func (s *Store) Set(key Key, value replicated.Value) error {
	if err := s.schema.validate(key, value); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = value
	s.dirty[key] = struct{}{}
	return nil
}

// TakeDirty returns the modified entries and clears the dirty set in one
// critical section. A concurrent Set lands either entirely before or
// entirely after the snapshot.
func (s *Store) TakeDirty() []DirtyEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.dirty) == 0 {
		return nil
	}
	entries := make([]DirtyEntry, 0, len(s.dirty))
	for key := range s.dirty {
		entries = append(entries, DirtyEntry{Key: key, Value: s.slots[key]})
	}
	s.dirty = make(map[Key]struct{})
	return entries
}
