package codec

// stringCodec implements Codec[string]: a 4-byte little-endian byte count
// followed by that many UTF-8 bytes, no terminator (spec.md §4.3 "Strings").
type stringCodec struct{}

// String is the codec for UTF-8 strings.
var String Codec[string] = stringCodec{}

func (stringCodec) SerializedSize(v string) int {
	return 4 + len(v)
}

func (stringCodec) Serialize(v string, buf []byte) int {
	size := 4 + len(v)
	if len(buf) < size {
		return 0
	}
	Uint32.Serialize(uint32(len(v)), buf)
	copy(buf[4:size], v)
	return size
}

func (stringCodec) Deserialize(buf []byte) (string, int) {
	if len(buf) < 4 {
		return "", 0
	}
	n, _ := Uint32.Deserialize(buf)
	length := int(n)
	if len(buf) < 4+length {
		return "", 0
	}
	return string(buf[4 : 4+length]), 4 + length
}
