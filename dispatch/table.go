// Package dispatch implements the object/method dispatch table: spec.md
// §1 names this an external collaborator, specified only by the contract
// in §6 "Codec → dispatcher" — it reads object_id and method_id off a
// parsed request, looks up the registered method, hands args_view() to
// the method's decoder, and frames whatever the method returns into a
// response carrying the same call_id.
//
// Grounded on the teacher's server/service.go, but without its reflection:
// spec.md §4.3 "Dispatch" is explicit that "the codec offers no
// reflection: type identity is compile-time" — so a CIPC handler is an
// ordinary typed Go function the caller wrote, not a struct method found
// and invoked by reflect.Value.Call against a JSON payload. What survives
// from service.go is its shape: a lookup table from an address (there,
// "ServiceName.MethodName"; here, (object_id, method_id)) to a callable.
package dispatch

import (
	"fmt"

	"cipc/codec"
	"cipc/message"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Handler decodes a request's argument payload and returns the value to
// frame into the response. A Handler is written against one specific
// method_id and therefore knows its own argument types statically — it
// calls codec.Deserialize directly rather than through a registry.
type Handler func(objectID uint64, args []byte) (codec.Value, error)

// Table is the dispatch table for one CIPC endpoint: every locally
// addressable object, indexed by object_id, and every method registered
// against it, indexed by method_id.
type Table struct {
	log     *zap.SugaredLogger
	objects map[uint64]map[uint32]Handler
}

// NewTable creates an empty dispatch table. object_id 0 — the implicit
// service object (spec.md §3) — is just another entry; callers register
// it like any other.
func NewTable(log *zap.SugaredLogger) *Table {
	return &Table{log: log, objects: make(map[uint64]map[uint32]Handler)}
}

// Register binds a method_id on objectID to h. Registering the same
// (objectID, methodID) pair twice replaces the previous handler.
func (t *Table) Register(objectID uint64, methodID uint32, h Handler) {
	methods, ok := t.objects[objectID]
	if !ok {
		methods = make(map[uint32]Handler)
		t.objects[objectID] = methods
	}
	methods[methodID] = h
}

// Unregister removes every handler registered for objectID.
func (t *Table) Unregister(objectID uint64) {
	delete(t.objects, objectID)
}

// DispatchError (unknown object or unknown method) is returned to the
// transport layer rather than framed onto the wire: spec.md has no Message
// variant for "method not found" (only Request/Response), so an
// unresolvable call is a transport-level decision — drop the connection,
// or (as Serve and the demo command do) log it and send no response. See spec.md §7 "Higher
// layers decide whether to drop the connection, NAK the call, or surface
// the error to the application."
type DispatchError struct {
	ObjectID uint64
	MethodID uint32
	Reason   string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("cipc/dispatch: object %d method %d: %s", e.ObjectID, e.MethodID, e.Reason)
}

// Dispatch resolves req's (object_id, method_id), invokes the registered
// Handler against the argument payload, and frames the result into a
// response carrying req's call_id.
func (t *Table) Dispatch(req message.Message) (message.Message, error) {
	objectID := req.ObjectID()
	methodID := req.MethodID()

	methods, ok := t.objects[objectID]
	if !ok {
		return nil, &DispatchError{ObjectID: objectID, MethodID: methodID, Reason: "no such object"}
	}
	h, ok := methods[methodID]
	if !ok {
		return nil, &DispatchError{ObjectID: objectID, MethodID: methodID, Reason: "no such method"}
	}

	rv, err := h(objectID, req.Args())
	if err != nil {
		t.log.Warnw("cipc/dispatch: handler returned an error", "object_id", objectID, "method_id", methodID, "error", err)
		return nil, err
	}
	return message.NewResponse(req.CallID(), rv), nil
}

// Close unregisters every object in the table, aggregating any errors the
// caller-supplied cleanup hook (called once per object_id, may be nil)
// returns the way the
// teacher's Server.Shutdown aggregates etcd deregistration failures — but
// reporting every failure via multierr instead of only the last one.
func (t *Table) Close(cleanup func(objectID uint64) error) error {
	var err error
	for objectID := range t.objects {
		if cleanup != nil {
			err = multierr.Append(err, cleanup(objectID))
		}
		delete(t.objects, objectID)
	}
	return err
}
