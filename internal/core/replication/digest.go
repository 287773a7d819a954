package replication

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/wire"
)

// digestItems hashes a patch's items in key order so identical content
// always produces the same digest regardless of map iteration.
func digestItems(items map[uint64]wire.Value) uint64 {
	keys := make([]uint64, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	h := xxhash.New()
	var buf [8]byte
	for _, key := range keys {
		binary.LittleEndian.PutUint64(buf[:], key)
		_, _ = h.Write(buf[:])
		hashValue(h, items[key])
	}
	return h.Sum64()
}

// hashValue walks a wire value deterministically: map entries in sorted key
// order, each node prefixed with its kind.
func hashValue(h *xxhash.Digest, v wire.Value) {
	var buf [8]byte
	_, _ = h.Write([]byte{byte(v.Kind())})

	switch v.Kind() {
	case wire.KindNull:
	case wire.KindBool:
		b, _ := v.AsBool()
		if b {
			_, _ = h.Write([]byte{1})
		} else {
			_, _ = h.Write([]byte{0})
		}
	case wire.KindUInt64:
		u, _ := v.AsUInt()
		binary.LittleEndian.PutUint64(buf[:], u)
		_, _ = h.Write(buf[:])
	case wire.KindInt64:
		i, _ := v.AsInt()
		binary.LittleEndian.PutUint64(buf[:], uint64(i))
		_, _ = h.Write(buf[:])
	case wire.KindDouble:
		f, _ := v.AsDouble()
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	case wire.KindString:
		s, _ := v.AsString()
		_, _ = h.WriteString(s)
	case wire.KindSequence:
		elems, _ := v.AsSequence()
		for _, e := range elems {
			hashValue(h, e)
		}
	case wire.KindIntMap:
		entries, _ := v.AsIntMap()
		keys := make([]uint64, 0, len(entries))
		for key := range entries {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, key := range keys {
			binary.LittleEndian.PutUint64(buf[:], key)
			_, _ = h.Write(buf[:])
			hashValue(h, entries[key])
		}
	case wire.KindStringMap:
		entries, _ := v.AsStringMap()
		keys := make([]string, 0, len(entries))
		for key := range entries {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			_, _ = h.WriteString(key)
			hashValue(h, entries[key])
		}
	}
}
