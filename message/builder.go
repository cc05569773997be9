package message

import "cipc/codec"

// NewRequest builds a complete request frame in one allocation: the total
// argument size is summed up front via each Value's SerializedSize (the
// size oracle, spec.md §4.4), the buffer is allocated exactly once, the
// header is written, and each argument is streamed into the payload region
// in declared order. There is no incremental write-after-header path and
// no buffer growth — spec.md §5 and §9 call out the original's doubling
// argument buffer as a draft to not reproduce.
func NewRequest(callID uint16, methodID uint32, objectID uint64, args ...codec.Value) Message {
	argsSize := 0
	for _, a := range args {
		argsSize += a.SerializedSize()
	}

	buf := make([]byte, requestHeaderSize+argsSize)
	buf[0] = Preamble
	buf[1] = byte(TypeRequest)
	codec.Uint16.Serialize(callID, buf[2:4])
	codec.Uint32.Serialize(methodID, buf[4:8])
	codec.Uint64.Serialize(objectID, buf[8:16])

	cursor := requestHeaderSize
	for _, a := range args {
		cursor += a.Serialize(buf[cursor:])
	}
	// Postcondition (spec.md §4.6): cursor lands exactly on the end of the
	// buffer. A pre-sized buffer and well-formed Values make this
	// infallible — there is no incremental growth path that could fall
	// short or overrun.
	return Message(buf)
}

// NewResponse is the single-value analogue of NewRequest: a 4-byte header
// followed by one encoded return value.
func NewResponse(callID uint16, returnValue codec.Value) Message {
	buf := make([]byte, responseHeaderSize+returnValue.SerializedSize())
	buf[0] = Preamble
	buf[1] = byte(TypeResponse)
	codec.Uint16.Serialize(callID, buf[2:4])
	returnValue.Serialize(buf[responseHeaderSize:])
	return Message(buf)
}
