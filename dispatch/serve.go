package dispatch

import (
	"net"
	"sync"

	"cipc/message"
	"cipc/transport"
)

// Serve accepts connections on ln and dispatches every request frame
// received on each connection against t, writing back a response frame.
// Adapted from the teacher's Server.handleConn / handleRequest: one
// goroutine reads each connection sequentially (required — a stream
// socket has no built-in message boundaries), but each request is
// dispatched to its own goroutine so a slow handler doesn't stall other
// in-flight calls on the same connection. A per-connection write mutex
// keeps concurrent responses from interleaving on the wire.
//
// Serve blocks until ln.Accept returns a non-nil error (for example,
// because the caller closed ln) and then returns nil.
func Serve(ln net.Listener, t *Table) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return nil
		}
		go serveConn(conn, t)
	}
}

func serveConn(conn net.Conn, t *Table) {
	defer conn.Close()
	var writeMu sync.Mutex
	for {
		req, err := transport.ReadFrame(conn)
		if err != nil {
			return
		}
		if req.Type() != message.TypeRequest {
			continue
		}
		go serveRequest(conn, &writeMu, t, req)
	}
}

func serveRequest(conn net.Conn, writeMu *sync.Mutex, t *Table, req message.Message) {
	resp, err := t.Dispatch(req)
	if err != nil {
		t.log.Warnw("cipc/dispatch: dropping call that could not be dispatched", "error", err)
		return
	}
	writeMu.Lock()
	defer writeMu.Unlock()
	if err := transport.WriteFrame(conn, resp); err != nil {
		t.log.Warnw("cipc/dispatch: failed to write response frame", "error", err)
	}
}
