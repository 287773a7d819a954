package events

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/observability/log"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/wire"
)

func tagged(t wire.ItemType, payload wire.Value) wire.Value {
	return wire.Sequence(wire.UInt(uint64(t)), wire.Sequence(payload))
}

func eventMessage(components map[uint64]wire.Value) wire.Value {
	return wire.Sequence(
		wire.String(AsyncCallCompletedEventName),
		wire.UInt(123),
		wire.Null(),
		wire.IntMap(components),
	)
}

func TestDecoder_AsyncCallCompleted_LegacyLayout(t *testing.T) {
	d := NewDecoder(log.Nop())

	msg := eventMessage(map[uint64]wire.Value{
		0: tagged(wire.ItemTypeString, wire.String("DuplicateSpace")),
		1: tagged(wire.ItemTypeString, wire.String("new_space-abc-123")),
		2: tagged(wire.ItemTypeString, wire.String("GroupId")),
	})

	decoded, err := d.Decode(msg)
	require.NoError(t, err)

	event, ok := decoded.(*AsyncCallCompletedEvent)
	require.True(t, ok)

	require.Equal(t, "DuplicateSpace", event.OperationName)
	require.Equal(t, "new_space-abc-123", event.ReferenceID)
	require.Equal(t, "GroupId", event.ReferenceType)

	// Legacy layout leaves the dictionary form empty and newer fields at
	// their defaults.
	require.Empty(t, event.References)
	require.Nil(t, event.Success)
	require.Equal(t, "", event.StatusReason)

	require.Equal(t, uint64(123), event.SenderClientID)
	require.Nil(t, event.RecipientClientID)
}

func TestDecoder_AsyncCallCompleted_CurrentLayout(t *testing.T) {
	d := NewDecoder(log.Nop())

	refs := wire.StringMap(map[string]wire.Value{
		"SpaceId":         tagged(wire.ItemTypeString, wire.String("new_space-abc-123")),
		"OriginalSpaceId": tagged(wire.ItemTypeString, wire.String("orig_space-abc-123")),
	})
	msg := eventMessage(map[uint64]wire.Value{
		0: tagged(wire.ItemTypeString, wire.String("DuplicateSpace")),
		1: tagged(wire.ItemTypeStringDictionary, refs),
		2: tagged(wire.ItemTypeNullableBool, wire.Bool(true)),
		3: tagged(wire.ItemTypeString, wire.String("Success")),
	})

	decoded, err := d.Decode(msg)
	require.NoError(t, err)

	event, ok := decoded.(*AsyncCallCompletedEvent)
	require.True(t, ok)

	require.Equal(t, "DuplicateSpace", event.OperationName)
	require.Equal(t, "new_space-abc-123", event.References["SpaceId"])
	require.Equal(t, "orig_space-abc-123", event.References["OriginalSpaceId"])
	require.NotNil(t, event.Success)
	require.True(t, *event.Success)
	require.Equal(t, "Success", event.StatusReason)

	// Backward-compat derivation from the References dictionary.
	require.Equal(t, "new_space-abc-123", event.ReferenceID)
	require.Equal(t, "GroupId", event.ReferenceType)
}

func TestDecoder_AsyncCallCompleted_NullSuccessIsAbsent(t *testing.T) {
	d := NewDecoder(log.Nop())

	msg := eventMessage(map[uint64]wire.Value{
		0: tagged(wire.ItemTypeString, wire.String("DuplicateSpace")),
		2: tagged(wire.ItemTypeNullableBool, wire.Null()),
	})

	decoded, err := d.Decode(msg)
	require.NoError(t, err)

	event := decoded.(*AsyncCallCompletedEvent)
	require.Nil(t, event.Success)
	require.Equal(t, "", event.StatusReason)
}

func TestDecoder_WrongArityFails(t *testing.T) {
	d := NewDecoder(log.Nop())

	msg := wire.Sequence(
		wire.String(AsyncCallCompletedEventName),
		wire.UInt(123),
		wire.Null(),
	)

	decoded, err := d.Decode(msg)
	require.Nil(t, decoded)

	var shape *wire.ShapeError
	require.ErrorAs(t, err, &shape)
	require.Equal(t, "event", shape.Field)
}

func TestDecoder_MalformedEnvelope(t *testing.T) {
	d := NewDecoder(log.Nop())

	cases := map[string]wire.Value{
		"not a sequence": wire.String("AsyncCallCompleted"),
		"non-string name": wire.Sequence(
			wire.UInt(1), wire.UInt(123), wire.Null(), wire.IntMap(nil)),
		"non-integer sender": wire.Sequence(
			wire.String("X"), wire.String("123"), wire.Null(), wire.IntMap(nil)),
		"components not a map": wire.Sequence(
			wire.String("X"), wire.UInt(123), wire.Null(), wire.Sequence()),
	}

	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			decoded, err := d.Decode(msg)
			require.Error(t, err)
			require.Nil(t, decoded)
		})
	}
}

func TestDecoder_RecipientClientID(t *testing.T) {
	d := NewDecoder(log.Nop())

	msg := wire.Sequence(
		wire.String("SomethingElse"),
		wire.UInt(7),
		wire.UInt(9),
		wire.IntMap(nil),
	)

	decoded, err := d.Decode(msg)
	require.NoError(t, err)

	event, ok := decoded.(*Event)
	require.True(t, ok)
	require.NotNil(t, event.RecipientClientID)
	require.Equal(t, uint64(9), *event.RecipientClientID)
}

func TestDecoder_UnknownEventNameDecodesGenerically(t *testing.T) {
	d := NewDecoder(log.Nop())

	msg := wire.Sequence(
		wire.String("SomeFutureEvent"),
		wire.UInt(55),
		wire.Null(),
		wire.IntMap(map[uint64]wire.Value{
			0: tagged(wire.ItemTypeString, wire.String("hello")),
		}),
	)

	decoded, err := d.Decode(msg)
	require.NoError(t, err)

	event, ok := decoded.(*Event)
	require.True(t, ok)
	require.Equal(t, "SomeFutureEvent", event.EventName())

	s, err := event.Components[0].Value.AsString()
	require.NoError(t, err)
	require.Equal(t, "hello", s)
}

func TestDecoder_UnknownItemTypeDoesNotAbortSiblings(t *testing.T) {
	d := NewDecoder(log.Nop())

	msg := eventMessage(map[uint64]wire.Value{
		0: tagged(wire.ItemTypeString, wire.String("DuplicateSpace")),
		1: tagged(wire.ItemTypeString, wire.String("ref-1")),
		2: tagged(wire.ItemTypeString, wire.String("GroupId")),
		9: tagged(wire.ItemType(8888), wire.String("from the future")),
	})

	decoded, err := d.Decode(msg)
	require.NoError(t, err)

	event := decoded.(*AsyncCallCompletedEvent)
	require.Equal(t, "DuplicateSpace", event.OperationName)
	require.Equal(t, "ref-1", event.ReferenceID)

	// The unknown item is surfaced as Invalid, not dropped.
	item, ok := event.Components[9]
	require.True(t, ok)
	require.Equal(t, "Invalid", item.Value.Kind().String())
}
