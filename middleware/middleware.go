// Package middleware wraps a dispatch handler with cross-cutting
// concerns — logging, rate limiting, timeouts, retry — the same onion
// model the teacher's middleware package builds around
// *message.RPCMessage, generalized here to CIPC's parsed message.Message.
package middleware

import (
	"context"

	"cipc/message"
)

// HandlerFunc is the call being wrapped: typically dispatch.Table.Dispatch
// adapted to take a context, or workerpool.Pool.Dispatch the same way.
type HandlerFunc func(ctx context.Context, req message.Message) (message.Message, error)

// Middleware wraps one HandlerFunc to produce another.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain composes middlewares into one, applied in the order given:
// Chain(A, B, C)(handler) == A(B(C(handler))), so A's before-logic runs
// first and its after-logic runs last — the same onion model as the
// teacher's Chain.
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
