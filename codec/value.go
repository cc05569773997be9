package codec

// Value is a type-erased, already-typed argument ready to be framed into a
// message payload. The builder façade (message.NewRequest / NewResponse)
// takes a heterogeneous []Value the way spec.md §4.6 describes — each
// element still carries its own concrete Codec internally, there is no
// runtime type tag, the erasure only exists so a single Go slice can hold
// a uint32 next to a string next to a nested slice.
type Value interface {
	SerializedSize() int
	Serialize(buf []byte) int
}

// bound pairs one not-yet-encoded value with its codec, giving it the
// Value capability. Every Arg* constructor below is a thin call to bind.
type bound[T any] struct {
	v T
	c Codec[T]
}

func (b bound[T]) SerializedSize() int      { return b.c.SerializedSize(b.v) }
func (b bound[T]) Serialize(buf []byte) int { return b.c.Serialize(b.v, buf) }

// Bind wraps v with an explicit codec, for element types that don't have a
// package-level Arg* constructor (enums, nested composites).
func Bind[T any](v T, c Codec[T]) Value { return bound[T]{v: v, c: c} }

func ArgU8(v uint8) Value       { return bound[uint8]{v, Uint8} }
func ArgU16(v uint16) Value     { return bound[uint16]{v, Uint16} }
func ArgU32(v uint32) Value     { return bound[uint32]{v, Uint32} }
func ArgU64(v uint64) Value     { return bound[uint64]{v, Uint64} }
func ArgI8(v int8) Value        { return bound[int8]{v, Int8} }
func ArgI16(v int16) Value      { return bound[int16]{v, Int16} }
func ArgI32(v int32) Value      { return bound[int32]{v, Int32} }
func ArgI64(v int64) Value      { return bound[int64]{v, Int64} }
func ArgBool(v bool) Value      { return bound[bool]{v, Bool} }
func ArgF32(v float32) Value    { return bound[float32]{v, Float32} }
func ArgF64(v float64) Value    { return bound[float64]{v, Float64} }
func ArgString(v string) Value  { return bound[string]{v, String} }

// ArgSlice wraps a []T argument, recursing through elem the same way
// Slice(elem) does for a direct Codec[[]T].
func ArgSlice[T any](v []T, elem Codec[T]) Value {
	return bound[[]T]{v: v, c: Slice(elem)}
}

// ArgMap wraps a map[K]V argument, recursing through key and value.
func ArgMap[K comparable, V any](v map[K]V, key Codec[K], value Codec[V]) Value {
	return bound[map[K]V]{v: v, c: Map(key, value)}
}
