package codec

import (
	"reflect"
	"testing"
)

func TestEmptySliceRoundTrip(t *testing.T) {
	// spec.md S4: an empty sequence of u32 encodes as the 4-byte zero
	// length only.
	c := Slice(Uint32)
	var v []uint32
	buf := make([]byte, c.SerializedSize(v))
	if len(buf) != 4 {
		t.Fatalf("SerializedSize(empty) = %d, want 4", len(buf))
	}
	c.Serialize(v, buf)
	got, n := c.Deserialize(buf)
	if n != 4 || len(got) != 0 {
		t.Errorf("Deserialize = (%v, %d), want (empty, 4)", got, n)
	}
}

func TestSliceOfUint32RoundTrip(t *testing.T) {
	c := Slice(Uint32)
	v := []uint32{1, 2, 3, 0xFFFFFFFF}
	buf := make([]byte, c.SerializedSize(v))
	n := c.Serialize(v, buf)
	if n != len(buf) {
		t.Fatalf("Serialize returned %d, want %d", n, len(buf))
	}
	got, n := c.Deserialize(buf)
	if n != len(buf) || !reflect.DeepEqual(got, v) {
		t.Errorf("Deserialize = (%v, %d), want (%v, %d)", got, n, v, len(buf))
	}
}

func TestNestedSliceOfStrings(t *testing.T) {
	c := Slice(Slice(String))
	v := [][]string{{"a", "bb"}, {}, {"ccc"}}
	buf := make([]byte, c.SerializedSize(v))
	c.Serialize(v, buf)
	got, n := c.Deserialize(buf)
	if n != len(buf) || !reflect.DeepEqual(got, v) {
		t.Errorf("Deserialize = (%v, %d), want (%v, %d)", got, n, v, len(buf))
	}
}

func TestSliceDeserializeTruncated(t *testing.T) {
	c := Slice(Uint32)
	v := []uint32{1, 2, 3}
	full := make([]byte, c.SerializedSize(v))
	c.Serialize(v, full)
	if _, n := c.Deserialize(full[:len(full)-1]); n != 0 {
		t.Errorf("Deserialize of truncated slice returned %d, want 0", n)
	}
}

func TestSliceInsufficientBufferOnEncode(t *testing.T) {
	c := Slice(Uint32)
	v := []uint32{1, 2, 3}
	buf := make([]byte, c.SerializedSize(v)-1)
	if n := c.Serialize(v, buf); n != 0 {
		t.Errorf("Serialize into short buffer returned %d, want 0", n)
	}
}

func TestSliceDeserializeAdversarialCountDoesNotAllocate(t *testing.T) {
	// A 4-byte buffer claiming a count of 0xFFFFFFFF elements must fail
	// gracefully rather than sizing a multi-gigabyte allocation off the
	// untrusted count before ever looking at how much buffer remains.
	c := Slice(Uint32)
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	got, n := c.Deserialize(buf)
	if n != 0 || got != nil {
		t.Errorf("Deserialize with adversarial count = (%v, %d), want (nil, 0)", got, n)
	}
}
