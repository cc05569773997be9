package middleware

import (
	"context"
	"fmt"

	"cipc/message"
	"golang.org/x/time/rate"
)

// RateLimit throttles dispatched calls with a token bucket, the same
// algorithm and the same library (golang.org/x/time/rate) as the
// teacher's RateLimitMiddleware — generalized from "RPC request" to
// "framed CIPC request".
func RateLimit(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req message.Message) (message.Message, error) {
			if !limiter.Allow() {
				return nil, fmt.Errorf("cipc/middleware: rate limit exceeded for call %d", req.CallID())
			}
			return next(ctx, req)
		}
	}
}
