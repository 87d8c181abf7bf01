package repository

import (
	"context"
	"time"
)

// queryCtx bounds one store round trip. A zero timeout leaves the caller's
// context untouched.
func queryCtx(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
