package codec

// Slice builds the codec for an ordered, homogeneous sequence of T: a
// 4-byte little-endian element count followed by each element encoded with
// elem in iteration order (spec.md §4.3 "Ordered sequences"). The wire is
// container-agnostic — any Go slice round-trips through this codec
// regardless of how the caller built it, matching spec.md's "a vector and
// a linked list round-trip to the same bytes for the same logical
// sequence".
func Slice[T any](elem Codec[T]) Codec[[]T] {
	return sliceCodec[T]{elem: elem}
}

type sliceCodec[T any] struct {
	elem Codec[T]
}

func (c sliceCodec[T]) SerializedSize(v []T) int {
	size := 4
	for _, e := range v {
		size += c.elem.SerializedSize(e)
	}
	return size
}

func (c sliceCodec[T]) Serialize(v []T, buf []byte) int {
	if c.SerializedSize(v) > len(buf) {
		return 0
	}
	Uint32.Serialize(uint32(len(v)), buf)
	offset := 4
	for _, e := range v {
		n := c.elem.Serialize(e, buf[offset:])
		if n == 0 {
			return 0
		}
		offset += n
	}
	return offset
}

// Deserialize decodes into a new, empty slice rather than into an existing
// destination, reading the count and then each element in turn. If any element fails to
// decode, the whole operation returns 0 — the caller must treat a 0 return
// as "do not use the output", per spec.md's note that the destination may
// be left with partial contents.
func (c sliceCodec[T]) Deserialize(buf []byte) ([]T, int) {
	if len(buf) < 4 {
		return nil, 0
	}
	n, _ := Uint32.Deserialize(buf)
	count := int(n)
	// Every element occupies at least one byte on the wire, so a count
	// that outruns the remaining buffer is already malformed — reject it
	// here rather than sizing an allocation off an untrusted count taken
	// straight from the wire (spec.md §7/§8).
	if count > len(buf)-4 {
		return nil, 0
	}
	out := make([]T, 0, count)
	offset := 4
	for i := 0; i < count; i++ {
		if offset > len(buf) {
			return out, 0
		}
		e, n := c.elem.Deserialize(buf[offset:])
		if n == 0 {
			return out, 0
		}
		out = append(out, e)
		offset += n
	}
	return out, offset
}
