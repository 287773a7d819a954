// Package wire holds the dynamic value tree delivered by the transport and
// the tagged item codec that maps it onto replicated values.
package wire

// Kind identifies the shape of one Value node.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindUInt64
	KindInt64
	KindDouble
	KindString
	KindSequence
	KindIntMap
	KindStringMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindUInt64:
		return "UInt64"
	case KindInt64:
		return "Int64"
	case KindDouble:
		return "Double"
	case KindString:
		return "String"
	case KindSequence:
		return "Sequence"
	case KindIntMap:
		return "IntMap"
	case KindStringMap:
		return "StringMap"
	default:
		return "Unknown"
	}
}

// Value mirrors the transport's native dynamic representation. It is built
// once by the transport adapter and treated as read-only by decoding.
type Value struct {
	kind    Kind
	boolean bool
	u64     uint64
	i64     int64
	double  float64
	str     string
	seq     []Value
	intMap  map[uint64]Value
	strMap  map[string]Value
}

func Null() Value { return Value{kind: KindNull} }

func Bool(v bool) Value { return Value{kind: KindBool, boolean: v} }

func UInt(v uint64) Value { return Value{kind: KindUInt64, u64: v} }

func Int(v int64) Value { return Value{kind: KindInt64, i64: v} }

func Double(v float64) Value { return Value{kind: KindDouble, double: v} }

func String(v string) Value { return Value{kind: KindString, str: v} }

func Sequence(elems ...Value) Value {
	return Value{kind: KindSequence, seq: elems}
}

func IntMap(entries map[uint64]Value) Value {
	return Value{kind: KindIntMap, intMap: entries}
}

func StringMap(entries map[string]Value) Value {
	return Value{kind: KindStringMap, strMap: entries}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, shapeMismatch(KindBool, v.kind)
	}
	return v.boolean, nil
}

// AsUInt accepts UInt64 and non-negative Int64 values; transports differ in
// which of the two they use for small positive integers.
func (v Value) AsUInt() (uint64, error) {
	switch v.kind {
	case KindUInt64:
		return v.u64, nil
	case KindInt64:
		if v.i64 < 0 {
			return 0, shapeMismatch(KindUInt64, v.kind)
		}
		return uint64(v.i64), nil
	default:
		return 0, shapeMismatch(KindUInt64, v.kind)
	}
}

// AsInt accepts Int64 and UInt64 values that fit in an int64.
func (v Value) AsInt() (int64, error) {
	switch v.kind {
	case KindInt64:
		return v.i64, nil
	case KindUInt64:
		if v.u64 > 1<<63-1 {
			return 0, shapeMismatch(KindInt64, v.kind)
		}
		return int64(v.u64), nil
	default:
		return 0, shapeMismatch(KindInt64, v.kind)
	}
}

// AsDouble widens integer values to float64.
func (v Value) AsDouble() (float64, error) {
	switch v.kind {
	case KindDouble:
		return v.double, nil
	case KindInt64:
		return float64(v.i64), nil
	case KindUInt64:
		return float64(v.u64), nil
	default:
		return 0, shapeMismatch(KindDouble, v.kind)
	}
}

func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", shapeMismatch(KindString, v.kind)
	}
	return v.str, nil
}

func (v Value) AsSequence() ([]Value, error) {
	if v.kind != KindSequence {
		return nil, shapeMismatch(KindSequence, v.kind)
	}
	return v.seq, nil
}

func (v Value) AsIntMap() (map[uint64]Value, error) {
	if v.kind != KindIntMap {
		return nil, shapeMismatch(KindIntMap, v.kind)
	}
	return v.intMap, nil
}

func (v Value) AsStringMap() (map[string]Value, error) {
	if v.kind != KindStringMap {
		return nil, shapeMismatch(KindStringMap, v.kind)
	}
	return v.strMap, nil
}
