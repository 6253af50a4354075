package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

// slowProvider answers after a fixed delay, honoring cancellation.
type slowProvider struct {
	delay time.Duration
}

func (s *slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	select {
	case <-time.After(s.delay):
		return &Response{Content: []byte(`{}`), Model: "slow"}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *slowProvider) ModelID() string { return "slow" }

func TestWithTimeout_StuckCallFailsFast(t *testing.T) {
	p := WithTimeout(&slowProvider{delay: 5 * time.Second}, 30*time.Millisecond)

	start := time.Now()
	_, err := p.Generate(context.Background(), Request{})
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected an error from a call exceeding its deadline")
	}
	if elapsed > time.Second {
		t.Fatalf("call blocked %v, want prompt failure at the deadline", elapsed)
	}

	// The per-call deadline surfaces as a transient provider error, not
	// as a context error, so the retry layer will attempt it again.
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("error = %v, want *ErrProviderUnavailable", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		t.Error("per-call timeout must not propagate as context.DeadlineExceeded")
	}
	retried := false
	if !shouldRetry(err, &retried) {
		t.Error("timed-out call must be classified retryable")
	}
}

func TestWithTimeout_FastCallPassesThrough(t *testing.T) {
	p := WithTimeout(&slowProvider{delay: time.Millisecond}, time.Second)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Model != "slow" {
		t.Errorf("Model = %q, want %q", resp.Model, "slow")
	}
}

func TestWithTimeout_CallerCancelPropagates(t *testing.T) {
	p := WithTimeout(&slowProvider{delay: 5 * time.Second}, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestWithTimeout_DisabledWhenNonPositive(t *testing.T) {
	inner := &slowProvider{delay: time.Millisecond}
	if p := WithTimeout(inner, 0); p != Provider(inner) {
		t.Error("zero timeout must return the provider unwrapped")
	}
}
