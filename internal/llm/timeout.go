package llm

import (
	"context"
	"fmt"
	"time"
)

// TimeoutProvider is a decorator that bounds each Generate call with
// its own deadline. The deadline is per network call, not per batched
// operation: when a call times out while the caller's context is still
// alive, the timeout surfaces as a transient provider error so the
// retry layer can attempt the call again.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps a Provider with a per-call deadline. A
// non-positive timeout returns the provider unwrapped.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: timeout}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	resp, err := t.inner.Generate(callCtx, req)
	if err != nil && callCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		// This call hit its own deadline; the surrounding operation is
		// still alive, so classify as transient rather than canceled.
		return nil, &ErrProviderUnavailable{
			Err: fmt.Errorf("request timed out after %s", t.timeout),
		}
	}
	return resp, err
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
