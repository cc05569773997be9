package codec

import "testing"

func TestMapStringToIntRoundTrip(t *testing.T) {
	// spec.md S5: {"a":5, "b":10}. Map iteration order is not guaranteed
	// stable, so the assertion is value-equality of the rebuilt map, never
	// byte-equality of the wire — property 6 in spec.md §8.
	c := Map(String, Uint32)
	v := map[string]uint32{"a": 5, "b": 10}
	buf := make([]byte, c.SerializedSize(v))
	n := c.Serialize(v, buf)
	if n != len(buf) {
		t.Fatalf("Serialize returned %d, want %d", n, len(buf))
	}
	got, n := c.Deserialize(buf)
	if n != len(buf) {
		t.Fatalf("Deserialize consumed %d bytes, want %d", n, len(buf))
	}
	if len(got) != len(v) {
		t.Fatalf("Deserialize = %v, want %v", got, v)
	}
	for k, want := range v {
		if got[k] != want {
			t.Errorf("key %q = %d, want %d", k, got[k], want)
		}
	}
}

func TestEmptyMapRoundTrip(t *testing.T) {
	c := Map(Uint32, String)
	v := map[uint32]string{}
	buf := make([]byte, c.SerializedSize(v))
	if len(buf) != 4 {
		t.Fatalf("SerializedSize(empty map) = %d, want 4", len(buf))
	}
	c.Serialize(v, buf)
	got, n := c.Deserialize(buf)
	if n != 4 || len(got) != 0 {
		t.Errorf("Deserialize = (%v, %d), want (empty, 4)", got, n)
	}
}

func TestMapOrderIndependence(t *testing.T) {
	// Re-encoding the same logical map from two different Go map values
	// with the same contents (but necessarily re-randomized iteration
	// order) must decode to equal maps even though the wire bytes may
	// differ in pair order.
	c := Map(Uint32, Uint32)
	v1 := map[uint32]uint32{1: 10, 2: 20, 3: 30}
	v2 := map[uint32]uint32{3: 30, 2: 20, 1: 10}

	buf1 := make([]byte, c.SerializedSize(v1))
	c.Serialize(v1, buf1)
	buf2 := make([]byte, c.SerializedSize(v2))
	c.Serialize(v2, buf2)

	got1, _ := c.Deserialize(buf1)
	got2, _ := c.Deserialize(buf2)
	for k, val := range got1 {
		if got2[k] != val {
			t.Errorf("key %d = %d in got2, want %d", k, got2[k], val)
		}
	}
}

func TestNestedMapOfSliceOfMap(t *testing.T) {
	// Nesting is unrestricted (spec.md §4.3): map of string to a slice of
	// map of string to int.
	inner := Map(String, Int32)
	mid := Slice(inner)
	outer := Map(String, mid)

	v := map[string][]map[string]int32{
		"x": {{"a": 1}, {"b": -2}},
		"y": {},
	}
	buf := make([]byte, outer.SerializedSize(v))
	outer.Serialize(v, buf)
	got, n := outer.Deserialize(buf)
	if n != len(buf) {
		t.Fatalf("Deserialize consumed %d bytes, want %d", n, len(buf))
	}
	if len(got) != len(v) || len(got["x"]) != 2 || got["x"][0]["a"] != 1 || got["x"][1]["b"] != -2 {
		t.Errorf("nested round trip mismatch: got %v", got)
	}
}

func TestMapDeserializeTruncated(t *testing.T) {
	c := Map(String, Uint32)
	v := map[string]uint32{"key": 42}
	full := make([]byte, c.SerializedSize(v))
	c.Serialize(v, full)
	if _, n := c.Deserialize(full[:len(full)-1]); n != 0 {
		t.Errorf("Deserialize of truncated map returned %d, want 0", n)
	}
}

func TestMapDeserializeAdversarialCountDoesNotAllocate(t *testing.T) {
	// A 4-byte buffer claiming a pair count of 0xFFFFFFFF must fail
	// gracefully rather than sizing a huge map allocation off the
	// untrusted count before ever looking at how much buffer remains.
	c := Map(Uint32, Uint32)
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	got, n := c.Deserialize(buf)
	if n != 0 || got != nil {
		t.Errorf("Deserialize with adversarial count = (%v, %d), want (nil, 0)", got, n)
	}
}
