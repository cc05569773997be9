package middleware

import (
	"context"
	"fmt"
	"time"

	"cipc/message"
)

// Timeout bounds a dispatched call to d, the same race-the-context-against
// a result-channel shape as the teacher's TimeOutMiddleware.
func Timeout(d time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req message.Message) (message.Message, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()

			type result struct {
				resp message.Message
				err  error
			}
			done := make(chan result, 1)
			go func() {
				resp, err := next(ctx, req)
				done <- result{resp, err}
			}()

			select {
			case r := <-done:
				return r.resp, r.err
			case <-ctx.Done():
				return nil, fmt.Errorf("cipc/middleware: call %d timed out after %s", req.CallID(), d)
			}
		}
	}
}
