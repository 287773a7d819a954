package property

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/replicated"
)

func testSchema() *Schema {
	return NewSchema("test", []Slot{
		{Kind: replicated.KindVector3},
		{Kind: replicated.KindVector4, Default: replicated.Vec4(replicated.IdentityRotation())},
		{Kind: replicated.KindString},
		Reserved(),
		{Kind: replicated.KindInteger},
	})
}

func TestStore_DefaultsPreFilled(t *testing.T) {
	store := NewStore(testSchema())

	pos, err := store.Get(0).AsVector3()
	require.NoError(t, err)
	require.Equal(t, replicated.Vector3{}, pos)

	rot, err := store.Get(1).AsVector4()
	require.NoError(t, err)
	require.Equal(t, replicated.Vector4{W: 1}, rot)

	id, err := store.Get(2).AsString()
	require.NoError(t, err)
	require.Equal(t, "", id)

	// Nothing is dirty at construction.
	require.Empty(t, store.TakeDirty())
}

func TestStore_SetThenGet(t *testing.T) {
	store := NewStore(testSchema())

	want := replicated.Vec3(replicated.Vector3{X: 1, Y: 2, Z: 3})
	require.NoError(t, store.Set(0, want))
	require.True(t, store.Get(0).Equal(want))
}

func TestStore_SetKindMismatchLeavesStoreUnchanged(t *testing.T) {
	store := NewStore(testSchema())
	before := store.Get(2)

	err := store.Set(2, replicated.Int(5))
	require.Error(t, err)

	var mismatch *SchemaTypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, replicated.KindString, mismatch.Expected)
	require.Equal(t, replicated.KindInteger, mismatch.Actual)

	require.True(t, store.Get(2).Equal(before))
	require.Empty(t, store.TakeDirty())
}

func TestStore_SetOutOfRange(t *testing.T) {
	store := NewStore(testSchema())

	err := store.Set(99, replicated.Int(1))
	var outOfRange *OutOfRangeError
	require.ErrorAs(t, err, &outOfRange)
	require.Equal(t, Key(99), outOfRange.Key)

	require.Equal(t, replicated.KindInvalid, store.Get(99).Kind())
}

func TestStore_SetReservedKey(t *testing.T) {
	store := NewStore(testSchema())
	require.Error(t, store.Set(3, replicated.Int(1)))
}

func TestStore_TakeDirty(t *testing.T) {
	store := NewStore(testSchema())

	require.NoError(t, store.Set(0, replicated.Vec3(replicated.Vector3{X: 1})))
	require.NoError(t, store.Set(4, replicated.Int(7)))
	require.NoError(t, store.Set(4, replicated.Int(8))) // same key twice: one entry

	entries := store.TakeDirty()
	require.Len(t, entries, 2)

	byKey := make(map[Key]replicated.Value, len(entries))
	for _, e := range entries {
		byKey[e.Key] = e.Value
	}
	require.True(t, byKey[0].Equal(replicated.Vec3(replicated.Vector3{X: 1})))
	require.True(t, byKey[4].Equal(replicated.Int(8)))

	// Second take with no intervening Set is empty.
	require.Empty(t, store.TakeDirty())
}

func TestStore_ConcurrentSetAndTakeDirty(t *testing.T) {
	store := NewStore(testSchema())

	const writes = 500
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			_ = store.Set(4, replicated.Int(int64(i)))
		}
	}()

	taken := 0
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			for _, e := range store.TakeDirty() {
				require.Equal(t, Key(4), e.Key)
				require.Equal(t, replicated.KindInteger, e.Value.Kind())
				taken++
			}
		}
	}()

	wg.Wait()

	// Whatever was not flushed mid-run is still pending exactly once.
	rest := store.TakeDirty()
	require.LessOrEqual(t, len(rest), 1)
}
