package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValue_Kinds(t *testing.T) {
	require.True(t, Null().IsNull())
	require.Equal(t, KindSequence, Sequence().Kind())
	require.Equal(t, KindIntMap, IntMap(nil).Kind())
	require.Equal(t, KindStringMap, StringMap(nil).Kind())
}

func TestValue_NumericCoercion(t *testing.T) {
	u, err := Int(7).AsUInt()
	require.NoError(t, err)
	require.Equal(t, uint64(7), u)

	_, err = Int(-1).AsUInt()
	require.Error(t, err)

	i, err := UInt(9).AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(9), i)

	f, err := UInt(4).AsDouble()
	require.NoError(t, err)
	require.Equal(t, 4.0, f)
}

func TestValue_AccessorMismatch(t *testing.T) {
	_, err := String("x").AsSequence()
	require.Error(t, err)

	_, err = Sequence().AsString()
	require.Error(t, err)

	_, err = Bool(true).AsIntMap()
	require.Error(t, err)
}
