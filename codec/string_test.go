package codec

import (
	"bytes"
	"testing"
)

func TestStringRoundTrip(t *testing.T) {
	// spec.md S3: encoding "Short" yields the 4-byte length 05 00 00 00
	// followed by the UTF-8 bytes, with no terminator.
	v := "Short"
	buf := make([]byte, String.SerializedSize(v))
	n := String.Serialize(v, buf)
	if n != len(buf) {
		t.Fatalf("Serialize returned %d, want %d", n, len(buf))
	}
	want := []byte{0x05, 0x00, 0x00, 0x00, 'S', 'h', 'o', 'r', 't'}
	if !bytes.Equal(buf, want) {
		t.Errorf("encoded = % x, want % x", buf, want)
	}
	got, n := String.Deserialize(buf)
	if n != len(buf) || got != v {
		t.Errorf("Deserialize = (%q, %d), want (%q, %d)", got, n, v, len(buf))
	}
}

func TestEmptyStringRoundTrip(t *testing.T) {
	buf := make([]byte, String.SerializedSize(""))
	String.Serialize("", buf)
	got, n := String.Deserialize(buf)
	if n != 4 || got != "" {
		t.Errorf("Deserialize = (%q, %d), want (\"\", 4)", got, n)
	}
}

func TestStringTruncationDetected(t *testing.T) {
	// spec.md S6: a buffer advertising a 100-byte string but containing
	// only 10 bytes of payload must be reported as malformed (0 bytes
	// consumed) rather than panicking or over-reading.
	buf := make([]byte, 14)
	Uint32.Serialize(100, buf)
	if _, n := String.Deserialize(buf); n != 0 {
		t.Errorf("Deserialize of truncated string returned %d, want 0", n)
	}
}

func TestStringLengthPrefixUTF8Bytes(t *testing.T) {
	// The length prefix counts payload bytes, not code points.
	v := "héllo" // 'é' is two UTF-8 bytes
	size := String.SerializedSize(v)
	if size != 4+len(v) {
		t.Fatalf("SerializedSize = %d, want %d", size, 4+len(v))
	}
	buf := make([]byte, size)
	String.Serialize(v, buf)
	n, _ := Uint32.Deserialize(buf)
	if int(n) != len(v) {
		t.Errorf("length prefix = %d, want byte length %d", n, len(v))
	}
}
