package replicated

// Kind identifies the active variant of a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBoolean
	KindInteger
	KindFloat
	KindString
	KindVector2
	KindVector3
	KindVector4
	KindStringMap
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "Invalid"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindVector2:
		return "Vector2"
	case KindVector3:
		return "Vector3"
	case KindVector4:
		return "Vector4"
	case KindStringMap:
		return "StringMap"
	default:
		return "Unknown"
	}
}

// Value is the tagged union used for every networked property. Exactly one
// variant is active at a time; the zero Value has KindInvalid and accepts
// no accessor but Kind.
type Value struct {
	kind Kind

	boolean bool
	integer int64
	float   float64
	str     string
	vec2    Vector2
	vec3    Vector3
	vec4    Vector4
	strMap  map[string]string
}

// Invalid returns the default-constructed Value.
func Invalid() Value { return Value{} }

func Bool(v bool) Value { return Value{kind: KindBoolean, boolean: v} }

func Int(v int64) Value { return Value{kind: KindInteger, integer: v} }

func Float(v float64) Value { return Value{kind: KindFloat, float: v} }

func String(v string) Value { return Value{kind: KindString, str: v} }

func Vec2(v Vector2) Value { return Value{kind: KindVector2, vec2: v} }

func Vec3(v Vector3) Value { return Value{kind: KindVector3, vec3: v} }

func Vec4(v Vector4) Value { return Value{kind: KindVector4, vec4: v} }

// StrMap copies entries into the new Value so later mutation of the input
// map cannot alias stored state.
func StrMap(entries map[string]string) Value {
	m := make(map[string]string, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return Value{kind: KindStringMap, strMap: m}
}

// Kind reports the active variant. Valid on every Value, including Invalid.
func (v Value) Kind() Kind { return v.kind }

func (v Value) AsBool() (bool, error) {
	if v.kind != KindBoolean {
		return false, newMismatch(KindBoolean, v.kind)
	}
	return v.boolean, nil
}

func (v Value) AsInt() (int64, error) {
	if v.kind != KindInteger {
		return 0, newMismatch(KindInteger, v.kind)
	}
	return v.integer, nil
}

func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, newMismatch(KindFloat, v.kind)
	}
	return v.float, nil
}

func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", newMismatch(KindString, v.kind)
	}
	return v.str, nil
}

func (v Value) AsVector2() (Vector2, error) {
	if v.kind != KindVector2 {
		return Vector2{}, newMismatch(KindVector2, v.kind)
	}
	return v.vec2, nil
}

func (v Value) AsVector3() (Vector3, error) {
	if v.kind != KindVector3 {
		return Vector3{}, newMismatch(KindVector3, v.kind)
	}
	return v.vec3, nil
}

func (v Value) AsVector4() (Vector4, error) {
	if v.kind != KindVector4 {
		return Vector4{}, newMismatch(KindVector4, v.kind)
	}
	return v.vec4, nil
}

// AsStringMap returns a copy of the stored map; stored state stays immutable.
func (v Value) AsStringMap() (map[string]string, error) {
	if v.kind != KindStringMap {
		return nil, newMismatch(KindStringMap, v.kind)
	}
	m := make(map[string]string, len(v.strMap))
	for k, val := range v.strMap {
		m[k] = val
	}
	return m, nil
}

// Equal compares kind and payload together. Values of different kinds are
// never equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInvalid:
		return true
	case KindBoolean:
		return v.boolean == other.boolean
	case KindInteger:
		return v.integer == other.integer
	case KindFloat:
		return v.float == other.float
	case KindString:
		return v.str == other.str
	case KindVector2:
		return v.vec2 == other.vec2
	case KindVector3:
		return v.vec3 == other.vec3
	case KindVector4:
		return v.vec4 == other.vec4
	case KindStringMap:
		if len(v.strMap) != len(other.strMap) {
			return false
		}
		for k, val := range v.strMap {
			if ov, ok := other.strMap[k]; !ok || ov != val {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// DefaultOf returns the canonical default Value for a kind: false, zero,
// empty string, zero vectors, empty map. The default for KindInvalid is the
// Invalid value itself.
func DefaultOf(k Kind) Value {
	switch k {
	case KindBoolean:
		return Bool(false)
	case KindInteger:
		return Int(0)
	case KindFloat:
		return Float(0)
	case KindString:
		return String("")
	case KindVector2:
		return Vec2(Vector2{})
	case KindVector3:
		return Vec3(Vector3{})
	case KindVector4:
		return Vec4(Vector4{})
	case KindStringMap:
		return StrMap(nil)
	default:
		return Invalid()
	}
}
