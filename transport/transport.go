package transport

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"cipc/codec"
	"cipc/message"
	"go.uber.org/zap"
)

// Transport multiplexes concurrent calls over one Unix domain socket
// connection, adapted from the teacher's ClientTransport: a single recv
// loop reads frames off the connection and routes each response to the
// goroutine awaiting it, keyed by call_id, while a write mutex serializes
// writes so two concurrent calls never interleave their frame bytes on
// the wire.
//
// Unlike the teacher's transport, there is no heartbeat loop: CIPC's wire
// format has exactly two type tags (spec.md §3 — Request=1, Response=2),
// so a keep-alive frame has no type value it could legally carry without
// widening the wire format itself. Idle-connection liveness is left to
// the caller (or the operating system's socket keep-alive), consistent
// with connection lifecycle being a non-goal (SPEC_FULL.md §5).
type Transport struct {
	conn    net.Conn
	log     *zap.SugaredLogger
	nextID  uint32 // wraps into the 16-bit call_id space
	pending sync.Map
	sending sync.Mutex
}

// New wraps an already-established connection (typically from Dial or
// from a Listener's Accept) and starts its receive loop.
func New(conn net.Conn, log *zap.SugaredLogger) *Transport {
	t := &Transport{conn: conn, log: log}
	go t.recvLoop()
	return t
}

// Dial connects to a Unix domain socket at path and wraps it.
func Dial(path string, log *zap.SugaredLogger) (*Transport, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, err
	}
	return New(conn, log), nil
}

// Call builds a request frame, sends it, and blocks for the matching
// response. The call_id used for correlation is minted from an internal
// counter — the caller never manages call ids itself.
func (t *Transport) Call(methodID uint32, objectID uint64, args ...codec.Value) (message.Message, error) {
	callID := uint16(atomic.AddUint32(&t.nextID, 1))

	respCh := make(chan message.Message, 1)
	t.pending.Store(callID, respCh)

	req := message.NewRequest(callID, methodID, objectID, args...)

	t.sending.Lock()
	err := WriteFrame(t.conn, req)
	t.sending.Unlock()
	if err != nil {
		t.pending.Delete(callID)
		return nil, fmt.Errorf("cipc/transport: write request: %w", err)
	}

	resp := <-respCh
	if resp == nil {
		return nil, fmt.Errorf("cipc/transport: connection closed before response for call %d", callID)
	}
	return resp, nil
}

// recvLoop reads response frames off the connection and routes each to
// the caller waiting on its call_id. Reads must stay on one goroutine —
// the socket is a byte stream and concurrent readers would race on frame
// boundaries.
func (t *Transport) recvLoop() {
	for {
		resp, err := ReadFrame(t.conn)
		if err != nil {
			t.closeAllPending()
			return
		}
		if resp.Type() != message.TypeResponse {
			t.log.Warnw("cipc/transport: dropping non-response frame on client connection", "type", resp.Type())
			continue
		}
		if ch, ok := t.pending.LoadAndDelete(resp.CallID()); ok {
			ch.(chan message.Message) <- resp
		}
	}
}

func (t *Transport) closeAllPending() {
	t.pending.Range(func(key, value any) bool {
		value.(chan message.Message) <- nil
		t.pending.Delete(key)
		return true
	})
}

// Close closes the underlying connection. Any calls still awaiting a
// response receive a "connection closed" error once recvLoop observes the
// resulting read error.
func (t *Transport) Close() error {
	return t.conn.Close()
}

// Conn returns the underlying connection, for callers that need access to
// deadlines or peer credentials.
func (t *Transport) Conn() net.Conn { return t.conn }
