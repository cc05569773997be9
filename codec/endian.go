// Package codec implements the CIPC wire codec: fixed-width primitive
// encoding, length-prefixed composite encoding, and the size oracle that
// lets callers allocate a message buffer exactly once.
//
// Every codec in this package is a (SerializedSize, Serialize, Deserialize)
// triple bound to a single Go type, selected at the call site — there is no
// runtime type tag on the wire. Composite codecs (Slice, Map) take the
// element codec as a parameter and recurse, the same way a template
// specialization would in the original C++ implementation this package is
// ported from.
package codec

import "unsafe"

// nativeLittleEndian reports whether this process's host byte order is
// little-endian. Detected once at package initialization and cached — Go gives us no
// build-time constant for this the way the original's CIPC_LITTLE_ENDIAN
// preprocessor flag did.
var nativeLittleEndian = detectNativeEndian()

func detectNativeEndian() bool {
	var probe uint16 = 1
	return *(*byte)(unsafe.Pointer(&probe)) == 1
}

// bswap8 is the identity: a single byte has no internal byte order to
// swap. Included alongside bswap16/32/64 for symmetry, the way the
// original's byte_swap<uint8_t> specialization was — so a generic
// byte-swap call site can be written once for every width instead of
// special-casing the 1-byte case away.
func bswap8(x uint8) uint8 {
	return x
}

func bswap16(x uint16) uint16 {
	return (x >> 8) | (x << 8)
}

func bswap32(x uint32) uint32 {
	return uint32(bswap16(uint16(x)))<<16 | uint32(bswap16(uint16(x>>16)))
}

func bswap64(x uint64) uint64 {
	return uint64(bswap32(uint32(x)))<<32 | uint64(bswap32(uint32(x>>32)))
}

// hostToLE8 is the width-1 instance of the hostToLE family: always the
// identity, since bswap8 is. Every primitive codec in primitive.go — not
// just the multi-byte ones — goes through a hostToLE*/leToHost* call, so
// there is exactly one place per width where byte order is decided.
func hostToLE8(x uint8) uint8 { return bswap8(x) }

// hostToLE16 yields the little-endian bit pattern of x. On a little-endian
// host this is the identity; on a big-endian host it swaps.
func hostToLE16(x uint16) uint16 {
	if nativeLittleEndian {
		return x
	}
	return bswap16(x)
}

func hostToLE32(x uint32) uint32 {
	if nativeLittleEndian {
		return x
	}
	return bswap32(x)
}

func hostToLE64(x uint64) uint64 {
	if nativeLittleEndian {
		return x
	}
	return bswap64(x)
}

// leToHost is its own inverse: swapping twice is the identity, so decoding
// a little-endian pattern uses the same transform as encoding one.
func leToHost8(x uint8) uint8    { return hostToLE8(x) }
func leToHost16(x uint16) uint16 { return hostToLE16(x) }
func leToHost32(x uint32) uint32 { return hostToLE32(x) }
func leToHost64(x uint64) uint64 { return hostToLE64(x) }
