package codec

import "testing"

func TestBswap8IsIdentity(t *testing.T) {
	for _, v := range []uint8{0x00, 0x01, 0x7F, 0xFF} {
		if got := bswap8(v); got != v {
			t.Errorf("bswap8(%#x) = %#x, want %#x", v, got, v)
		}
	}
}

func TestBswapRoundTrip(t *testing.T) {
	if got := bswap16(bswap16(0xABCD)); got != 0xABCD {
		t.Errorf("bswap16 twice = %#x, want 0xABCD", got)
	}
	if got := bswap32(bswap32(0x11223344)); got != 0x11223344 {
		t.Errorf("bswap32 twice = %#x, want 0x11223344", got)
	}
	if got := bswap64(bswap64(0x1122334455667788)); got != 0x1122334455667788 {
		t.Errorf("bswap64 twice = %#x, want 0x1122334455667788", got)
	}
}

func TestBswap32Bytes(t *testing.T) {
	if got := bswap32(0x11223344); got != 0x44332211 {
		t.Errorf("bswap32(0x11223344) = %#x, want 0x44332211", got)
	}
}

func TestHostToLERoundTrip(t *testing.T) {
	// le_to_host(host_to_le(v)) == v for every representable v,
	// regardless of host endianness.
	if got := leToHost32(hostToLE32(0xCAFEBABE)); got != 0xCAFEBABE {
		t.Errorf("round trip = %#x, want 0xCAFEBABE", got)
	}
}
