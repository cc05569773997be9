package middleware

import (
	"context"
	"strings"
	"time"

	"cipc/message"
	"go.uber.org/zap"
)

// Retry re-dispatches a failed call up to maxRetries times with exponential
// backoff, the same shape as the teacher's RetryMiddleware — adapted to
// CIPC's (message.Message, error) return instead of an in-band
// RPCMessage.Error string, so retryability is judged on the Go error
// returned by the wrapped handler rather than on a parsed error field.
func Retry(maxRetries int, baseDelay time.Duration, log *zap.SugaredLogger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req message.Message) (message.Message, error) {
			resp, err := next(ctx, req)
			for i := 0; i < maxRetries; i++ {
				if err == nil {
					return resp, nil
				}
				if !isRetryable(err) {
					return resp, err
				}
				log.Warnw("cipc: retrying call", "call_id", req.CallID(), "attempt", i+1, "error", err)
				time.Sleep(baseDelay * time.Duration(uint(1)<<uint(i)))
				resp, err = next(ctx, req)
			}
			return resp, err
		}
	}
}

func isRetryable(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "connection refused")
}
