package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leofalp/extractor/core/client"
	"github.com/leofalp/extractor/providers/ai"
)

// NewTimeoutMiddleware returns a Middleware that enforces a per-request
// deadline. The context is canceled once the provider returns or the deadline
// expires.
//
// A caller context with a shorter deadline wins, as per normal context
// semantics; in that case the caller's error is returned unchanged. A
// non-positive timeout disables the middleware.
func NewTimeoutMiddleware(timeout time.Duration) client.Middleware {
	return func(next client.SendFunc) client.SendFunc {
		if timeout <= 0 {
			return next
		}

		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			response, err := next(timeoutCtx, request)
			if err != nil && ctx.Err() == nil && errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w after %s: %w", ErrRequestTimeout, timeout, err)
			}

			return response, err
		}
	}
}
