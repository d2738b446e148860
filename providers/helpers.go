package providers

import (
	"context"
	"time"
)

// WithTimeout bounds ctx by d. A non-positive d leaves ctx untouched and
// returns a no-op cancel, so callers can always defer the returned function.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
