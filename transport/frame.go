// Package transport carries CIPC messages over a Unix domain socket: the
// intra-host stream transport spec.md §6 requires but treats as an
// external collaborator. It is a reference implementation sized to
// exercise the codec and message packages end to end, not a general
// transport/socket-lifecycle/multiplexing product — those remain
// non-goals (SPEC_FULL.md §5).
package transport

import (
	"encoding/binary"
	"fmt"
	"io"

	"cipc/message"
)

// outerHeaderSize is the length of the frame-length prefix this package
// adds on top of a CIPC message. A Message is self-describing only up to
// its own fixed header (spec.md §6): the argument layout depends on
// method_id, which the transport does not know, so it cannot find the end
// of a request by inspecting the message alone. Prepending a 4-byte
// little-endian total length lets the receiver read exactly one frame at a
// time off the stream, the same problem the teacher's protocol package
// solved with its 14-byte header — CIPC's own header already carries the
// type tag, call id, and method/object ids, so the outer frame here
// carries only what the message can't: its length.
const outerHeaderSize = 4

// WriteFrame writes one length-prefixed CIPC message to w.
func WriteFrame(w io.Writer, msg message.Message) error {
	var lenBuf [outerHeaderSize]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(msg)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(msg)
	return err
}

// ReadFrame reads one length-prefixed CIPC message from r and parses its
// header.
func ReadFrame(r io.Reader) (message.Message, error) {
	var lenBuf [outerHeaderSize]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	size := binary.LittleEndian.Uint32(lenBuf[:])
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("cipc/transport: short frame body: %w", err)
	}
	return message.Parse(buf)
}
