package middleware

import (
	"context"
	"time"

	"cipc/message"
	"go.uber.org/zap"
)

// Logging records the object/method being dispatched and how long the
// handler took, the structured equivalent of the teacher's
// LoggingMiddleware (which used log.Printf on *message.RPCMessage's
// ServiceMethod field).
func Logging(log *zap.SugaredLogger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req message.Message) (message.Message, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			fields := []any{
				"call_id", req.CallID(),
				"duration", time.Since(start),
			}
			if req.Type() == message.TypeRequest {
				fields = append(fields, "object_id", req.ObjectID(), "method_id", req.MethodID())
			}
			if err != nil {
				log.Warnw("cipc: dispatch failed", append(fields, "error", err)...)
			} else {
				log.Debugw("cipc: dispatch completed", fields...)
			}
			return resp, err
		}
	}
}
