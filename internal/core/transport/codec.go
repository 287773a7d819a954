package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/wire"
)

// UnmarshalValue converts one JSON-framed message into a wire value tree.
// Objects whose keys are all base-10 unsigned integers become int-keyed
// maps, matching how the event components map travels over JSON framing;
// everything else keyed by string stays a string map.
func UnmarshalValue(data []byte) (wire.Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return wire.Value{}, errors.Wrap(err, "decode message json")
	}
	return fromJSON(raw)
}

func fromJSON(raw any) (wire.Value, error) {
	switch v := raw.(type) {
	case nil:
		return wire.Null(), nil
	case bool:
		return wire.Bool(v), nil
	case string:
		return wire.String(v), nil
	case json.Number:
		if i, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			if i >= 0 {
				return wire.UInt(uint64(i)), nil
			}
			return wire.Int(i), nil
		}
		if u, err := strconv.ParseUint(v.String(), 10, 64); err == nil {
			return wire.UInt(u), nil
		}
		f, err := v.Float64()
		if err != nil {
			return wire.Value{}, errors.Wrapf(err, "number %q", v.String())
		}
		return wire.Double(f), nil
	case []any:
		elems := make([]wire.Value, len(v))
		for i, e := range v {
			converted, err := fromJSON(e)
			if err != nil {
				return wire.Value{}, err
			}
			elems[i] = converted
		}
		return wire.Sequence(elems...), nil
	case map[string]any:
		if intKeys, ok := allIntegerKeys(v); ok {
			entries := make(map[uint64]wire.Value, len(v))
			for key, e := range v {
				converted, err := fromJSON(e)
				if err != nil {
					return wire.Value{}, err
				}
				entries[intKeys[key]] = converted
			}
			return wire.IntMap(entries), nil
		}
		entries := make(map[string]wire.Value, len(v))
		for key, e := range v {
			converted, err := fromJSON(e)
			if err != nil {
				return wire.Value{}, err
			}
			entries[key] = converted
		}
		return wire.StringMap(entries), nil
	default:
		return wire.Value{}, errors.Errorf("unsupported json node %T", raw)
	}
}

func allIntegerKeys(obj map[string]any) (map[string]uint64, bool) {
	keys := make(map[string]uint64, len(obj))
	for key := range obj {
		u, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return nil, false
		}
		keys[key] = u
	}
	return keys, true
}

// MarshalValue renders a wire value tree back into JSON framing, the exact
// inverse of UnmarshalValue.
func MarshalValue(v wire.Value) ([]byte, error) {
	raw, err := toJSON(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

func toJSON(v wire.Value) (any, error) {
	switch v.Kind() {
	case wire.KindNull:
		return nil, nil
	case wire.KindBool:
		b, _ := v.AsBool()
		return b, nil
	case wire.KindUInt64:
		u, _ := v.AsUInt()
		return u, nil
	case wire.KindInt64:
		i, _ := v.AsInt()
		return i, nil
	case wire.KindDouble:
		f, _ := v.AsDouble()
		return f, nil
	case wire.KindString:
		s, _ := v.AsString()
		return s, nil
	case wire.KindSequence:
		elems, _ := v.AsSequence()
		out := make([]any, len(elems))
		for i, e := range elems {
			converted, err := toJSON(e)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	case wire.KindIntMap:
		entries, _ := v.AsIntMap()
		keys := make([]uint64, 0, len(entries))
		for key := range entries {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		out := make(map[string]any, len(entries))
		for _, key := range keys {
			converted, err := toJSON(entries[key])
			if err != nil {
				return nil, err
			}
			out[fmt.Sprintf("%d", key)] = converted
		}
		return out, nil
	case wire.KindStringMap:
		entries, _ := v.AsStringMap()
		out := make(map[string]any, len(entries))
		for key, e := range entries {
			converted, err := toJSON(e)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil
	default:
		return nil, errors.Errorf("unsupported wire kind %s", v.Kind())
	}
}
