package codec

// Map builds the codec for an associative container keyed by K with values
// V: a 4-byte little-endian pair count followed by count (key, value)
// pairs, each written key-then-value with its own codec, in the source
// map's native iteration order — no sort, no canonicalization (spec.md
// §4.3 "Associative maps"). Go's map iteration order is randomized per
// run, which is exactly the "unordered map" case spec.md describes:
// equality on decode is value-equality of the rebuilt map, never
// byte-equality of the wire.
func Map[K comparable, V any](key Codec[K], value Codec[V]) Codec[map[K]V] {
	return mapCodec[K, V]{key: key, value: value}
}

type mapCodec[K comparable, V any] struct {
	key   Codec[K]
	value Codec[V]
}

func (c mapCodec[K, V]) SerializedSize(v map[K]V) int {
	size := 4
	for k, val := range v {
		size += c.key.SerializedSize(k) + c.value.SerializedSize(val)
	}
	return size
}

func (c mapCodec[K, V]) Serialize(v map[K]V, buf []byte) int {
	if c.SerializedSize(v) > len(buf) {
		return 0
	}
	Uint32.Serialize(uint32(len(v)), buf)
	offset := 4
	for k, val := range v {
		n := c.key.Serialize(k, buf[offset:])
		if n == 0 {
			return 0
		}
		offset += n
		n = c.value.Serialize(val, buf[offset:])
		if n == 0 {
			return 0
		}
		offset += n
	}
	return offset
}

func (c mapCodec[K, V]) Deserialize(buf []byte) (map[K]V, int) {
	if len(buf) < 4 {
		return nil, 0
	}
	n, _ := Uint32.Deserialize(buf)
	count := int(n)
	// Every (key, value) pair occupies at least two bytes on the wire, so
	// a count that outruns the remaining buffer is already malformed —
	// reject it here rather than sizing a map allocation off an untrusted
	// count taken straight from the wire (spec.md §7/§8).
	if count > (len(buf)-4)/2 {
		return nil, 0
	}
	out := make(map[K]V, count)
	offset := 4
	for i := 0; i < count; i++ {
		if offset > len(buf) {
			return out, 0
		}
		k, n := c.key.Deserialize(buf[offset:])
		if n == 0 {
			return out, 0
		}
		offset += n
		val, n := c.value.Deserialize(buf[offset:])
		if n == 0 {
			return out, 0
		}
		offset += n
		out[k] = val
	}
	return out, offset
}
