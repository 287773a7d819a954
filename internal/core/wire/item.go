package wire

import (
	"go.uber.org/zap"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/observability/log"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/replicated"
)

// ItemType is the wire code carried in the first position of every tagged
// component item `[TypeId, [payload]]`. Codes are stable across protocol
// versions; new codes append and retired ones stay reserved so encode and
// decode tables remain exact inverses between differently-versioned peers.
type ItemType uint64

const (
	ItemTypeBool ItemType = iota
	ItemTypeInt8
	ItemTypeInt16
	ItemTypeInt32
	ItemTypeInt64
	ItemTypeUInt8
	ItemTypeUInt16
	ItemTypeUInt32
	ItemTypeUInt64
	ItemTypeFloat
	ItemTypeDouble
	ItemTypeString
	ItemTypeVector2
	ItemTypeVector3
	ItemTypeVector4
	ItemTypeStringDictionary
	ItemTypeNullableBool
	ItemTypeNullableInt64
	ItemTypeNullableDouble
	ItemTypeNullableString
	itemTypeReserved0
	itemTypeReserved1
)

// Item is one decoded component entry. Null marks a nullable scalar whose
// payload was wire null: an absent value, distinct from false/0/"".
type Item struct {
	Value replicated.Value
	Null  bool
}

// ItemDecoder turns tagged wire items into replicated values. Unknown type
// codes decode to Invalid and are reported as diagnostics rather than
// failing the message, so newer senders stay compatible.
type ItemDecoder struct {
	log *log.Logger
}

func NewItemDecoder(logger *log.Logger) *ItemDecoder {
	return &ItemDecoder{log: logger}
}

// Decode expects `[TypeId:UInt64, Payload:Sequence]` with a single payload
// element and maps it through the type-code table.
func (d *ItemDecoder) Decode(v Value) (Item, error) {
	elems, err := v.AsSequence()
	if err != nil {
		return Item{}, NewShapeError("item", "%v", err)
	}
	if len(elems) != 2 {
		return Item{}, NewShapeError("item", "expected 2 elements, found %d", len(elems))
	}

	typeID, err := elems[0].AsUInt()
	if err != nil {
		return Item{}, NewShapeError("item type id", "%v", err)
	}

	payloadSeq, err := elems[1].AsSequence()
	if err != nil {
		return Item{}, NewShapeError("item payload", "%v", err)
	}
	if len(payloadSeq) != 1 {
		return Item{}, NewShapeError("item payload", "expected 1 element, found %d", len(payloadSeq))
	}
	payload := payloadSeq[0]

	switch ItemType(typeID) {
	case ItemTypeBool:
		b, err := payload.AsBool()
		if err != nil {
			return Item{}, NewShapeError("bool payload", "%v", err)
		}
		return Item{Value: replicated.Bool(b)}, nil

	case ItemTypeInt8, ItemTypeInt16, ItemTypeInt32, ItemTypeInt64,
		ItemTypeUInt8, ItemTypeUInt16, ItemTypeUInt32, ItemTypeUInt64:
		i, err := payload.AsInt()
		if err != nil {
			return Item{}, NewShapeError("integer payload", "%v", err)
		}
		return Item{Value: replicated.Int(i)}, nil

	case ItemTypeFloat, ItemTypeDouble:
		f, err := payload.AsDouble()
		if err != nil {
			return Item{}, NewShapeError("float payload", "%v", err)
		}
		return Item{Value: replicated.Float(f)}, nil

	case ItemTypeString:
		s, err := payload.AsString()
		if err != nil {
			return Item{}, NewShapeError("string payload", "%v", err)
		}
		return Item{Value: replicated.String(s)}, nil

	case ItemTypeVector2:
		coords, err := decodeVectorPayload(payload, 2)
		if err != nil {
			return Item{}, err
		}
		return Item{Value: replicated.Vec2(replicated.Vector2{X: coords[0], Y: coords[1]})}, nil

	case ItemTypeVector3:
		coords, err := decodeVectorPayload(payload, 3)
		if err != nil {
			return Item{}, err
		}
		return Item{Value: replicated.Vec3(replicated.Vector3{X: coords[0], Y: coords[1], Z: coords[2]})}, nil

	case ItemTypeVector4:
		coords, err := decodeVectorPayload(payload, 4)
		if err != nil {
			return Item{}, err
		}
		return Item{Value: replicated.Vec4(replicated.Vector4{X: coords[0], Y: coords[1], Z: coords[2], W: coords[3]})}, nil

	case ItemTypeStringDictionary:
		return d.decodeStringDictionary(payload)

	case ItemTypeNullableBool:
		if payload.IsNull() {
			return Item{Null: true}, nil
		}
		b, err := payload.AsBool()
		if err != nil {
			return Item{}, NewShapeError("nullable bool payload", "%v", err)
		}
		return Item{Value: replicated.Bool(b)}, nil

	case ItemTypeNullableInt64:
		if payload.IsNull() {
			return Item{Null: true}, nil
		}
		i, err := payload.AsInt()
		if err != nil {
			return Item{}, NewShapeError("nullable integer payload", "%v", err)
		}
		return Item{Value: replicated.Int(i)}, nil

	case ItemTypeNullableDouble:
		if payload.IsNull() {
			return Item{Null: true}, nil
		}
		f, err := payload.AsDouble()
		if err != nil {
			return Item{}, NewShapeError("nullable float payload", "%v", err)
		}
		return Item{Value: replicated.Float(f)}, nil

	case ItemTypeNullableString:
		if payload.IsNull() {
			return Item{Null: true}, nil
		}
		s, err := payload.AsString()
		if err != nil {
			return Item{}, NewShapeError("nullable string payload", "%v", err)
		}
		return Item{Value: replicated.String(s)}, nil

	default:
		d.log.Warn("unknown item data type, decoding as invalid",
			zap.Uint64("type_id", typeID))
		return Item{Value: replicated.Invalid()}, nil
	}
}

// decodeStringDictionary handles STRING_DICTIONARY payloads: a string-keyed
// map whose values are themselves one-level-nested tagged items, each of
// which must decode to a string.
func (d *ItemDecoder) decodeStringDictionary(payload Value) (Item, error) {
	entries, err := payload.AsStringMap()
	if err != nil {
		// An empty dictionary has no keys to type; framings that cannot
		// distinguish the two map shapes deliver it int-keyed.
		if intEntries, intErr := payload.AsIntMap(); intErr == nil && len(intEntries) == 0 {
			return Item{Value: replicated.StrMap(nil)}, nil
		}
		return Item{}, NewShapeError("string dictionary payload", "%v", err)
	}

	dict := make(map[string]string, len(entries))
	for key, nested := range entries {
		item, err := d.Decode(nested)
		if err != nil {
			return Item{}, err
		}
		if item.Null {
			return Item{}, NewShapeError("string dictionary entry "+key, "null entry not permitted")
		}
		s, err := item.Value.AsString()
		if err != nil {
			return Item{}, NewShapeError("string dictionary entry "+key, "%v", err)
		}
		dict[key] = s
	}
	return Item{Value: replicated.StrMap(dict)}, nil
}

func decodeVectorPayload(payload Value, n int) ([]float64, error) {
	elems, err := payload.AsSequence()
	if err != nil {
		return nil, NewShapeError("vector payload", "%v", err)
	}
	if len(elems) != n {
		return nil, NewShapeError("vector payload", "expected %d components, found %d", n, len(elems))
	}
	coords := make([]float64, n)
	for i, e := range elems {
		f, err := e.AsDouble()
		if err != nil {
			return nil, NewShapeError("vector component", "%v", err)
		}
		coords[i] = f
	}
	return coords, nil
}

// EncodeItem is the inverse of ItemDecoder.Decode for present replicated
// values, used by the replication sender. It shares the type-code table so
// a value round-trips through peers with unchanged tags.
func EncodeItem(v replicated.Value) (Value, error) {
	switch v.Kind() {
	case replicated.KindBoolean:
		b, _ := v.AsBool()
		return taggedItem(ItemTypeBool, Bool(b)), nil
	case replicated.KindInteger:
		i, _ := v.AsInt()
		return taggedItem(ItemTypeInt64, Int(i)), nil
	case replicated.KindFloat:
		f, _ := v.AsFloat()
		return taggedItem(ItemTypeDouble, Double(f)), nil
	case replicated.KindString:
		s, _ := v.AsString()
		return taggedItem(ItemTypeString, String(s)), nil
	case replicated.KindVector2:
		vec, _ := v.AsVector2()
		return taggedItem(ItemTypeVector2, Sequence(Double(vec.X), Double(vec.Y))), nil
	case replicated.KindVector3:
		vec, _ := v.AsVector3()
		return taggedItem(ItemTypeVector3, Sequence(Double(vec.X), Double(vec.Y), Double(vec.Z))), nil
	case replicated.KindVector4:
		vec, _ := v.AsVector4()
		return taggedItem(ItemTypeVector4, Sequence(Double(vec.X), Double(vec.Y), Double(vec.Z), Double(vec.W))), nil
	case replicated.KindStringMap:
		dict, _ := v.AsStringMap()
		entries := make(map[string]Value, len(dict))
		for key, val := range dict {
			entries[key] = taggedItem(ItemTypeString, String(val))
		}
		return taggedItem(ItemTypeStringDictionary, StringMap(entries)), nil
	default:
		return Value{}, NewShapeError("encode item", "cannot encode %s value", v.Kind())
	}
}

func taggedItem(t ItemType, payload Value) Value {
	return Sequence(UInt(uint64(t)), Sequence(payload))
}
