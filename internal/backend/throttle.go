package backend

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// throttle ensures a minimum interval between successive operations.
type throttle struct {
	limiter *rate.Limiter
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// wait blocks until the next operation may run or ctx is done.
func (t *throttle) wait(ctx context.Context) error {
	if t == nil || t.limiter == nil {
		return nil
	}
	return t.limiter.Wait(ctx)
}
