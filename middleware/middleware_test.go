package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"cipc/codec"
	"cipc/internal/observability"
	"cipc/message"
)

func sampleRequest() message.Message {
	return message.NewRequest(1, 7, 42, codec.ArgU8(9))
}

func TestChainOrdersBeforeAndAfter(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next HandlerFunc) HandlerFunc {
			return func(ctx context.Context, req message.Message) (message.Message, error) {
				order = append(order, name+":before")
				resp, err := next(ctx, req)
				order = append(order, name+":after")
				return resp, err
			}
		}
	}

	base := func(ctx context.Context, req message.Message) (message.Message, error) {
		order = append(order, "base")
		return req, nil
	}

	chained := Chain(mark("A"), mark("B"))(base)
	if _, err := chained(context.Background(), sampleRequest()); err != nil {
		t.Fatal(err)
	}

	want := []string{"A:before", "B:before", "base", "B:after", "A:after"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestLoggingPassesThroughResult(t *testing.T) {
	base := func(ctx context.Context, req message.Message) (message.Message, error) {
		return req, nil
	}
	handler := Logging(observability.Nop())(base)
	req := sampleRequest()
	resp, err := handler(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.CallID() != req.CallID() {
		t.Fatalf("expected passthrough response, got different call id")
	}
}

func TestLoggingSurfacesError(t *testing.T) {
	wantErr := errors.New("boom")
	base := func(ctx context.Context, req message.Message) (message.Message, error) {
		return nil, wantErr
	}
	handler := Logging(observability.Nop())(base)
	if _, err := handler(context.Background(), sampleRequest()); err != wantErr {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}

func TestRateLimitRejectsOverBurst(t *testing.T) {
	base := func(ctx context.Context, req message.Message) (message.Message, error) {
		return req, nil
	}
	handler := RateLimit(1, 1)(base)
	req := sampleRequest()

	if _, err := handler(context.Background(), req); err != nil {
		t.Fatalf("first call should pass, got %v", err)
	}
	if _, err := handler(context.Background(), req); err == nil {
		t.Fatal("second immediate call should be rate limited")
	}
}

func TestTimeoutReturnsErrorWhenHandlerHangs(t *testing.T) {
	base := func(ctx context.Context, req message.Message) (message.Message, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	handler := Timeout(10 * time.Millisecond)(base)
	if _, err := handler(context.Background(), sampleRequest()); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestTimeoutPassesThroughFastHandler(t *testing.T) {
	base := func(ctx context.Context, req message.Message) (message.Message, error) {
		return req, nil
	}
	handler := Timeout(50 * time.Millisecond)(base)
	if _, err := handler(context.Background(), sampleRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRetryStopsOnNonRetryableError(t *testing.T) {
	calls := 0
	base := func(ctx context.Context, req message.Message) (message.Message, error) {
		calls++
		return nil, errors.New("bad method id")
	}
	handler := Retry(3, time.Millisecond, observability.Nop())(base)
	if _, err := handler(context.Background(), sampleRequest()); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected 1 call for a non-retryable error, got %d", calls)
	}
}

func TestRetryRetriesOnTimeoutThenSucceeds(t *testing.T) {
	calls := 0
	base := func(ctx context.Context, req message.Message) (message.Message, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("dial timeout")
		}
		return req, nil
	}
	handler := Retry(5, time.Millisecond, observability.Nop())(base)
	resp, err := handler(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp == nil {
		t.Fatal("expected a response after recovering")
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetryExhaustsAndReturnsLastError(t *testing.T) {
	calls := 0
	base := func(ctx context.Context, req message.Message) (message.Message, error) {
		calls++
		return nil, errors.New("connection refused")
	}
	handler := Retry(2, time.Millisecond, observability.Nop())(base)
	if _, err := handler(context.Background(), sampleRequest()); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Fatalf("expected 1 initial + 2 retries = 3 calls, got %d", calls)
	}
}
