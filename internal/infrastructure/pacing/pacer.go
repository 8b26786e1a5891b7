package pacing

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/haonguyen/perfume-catalog/internal/core/ports"
)

var (
	_ ports.Pacer = NonePacer{}
	_ ports.Pacer = FixedDelayPacer{}
	_ ports.Pacer = (*TokenBucketPacer)(nil)
)

// The batch orchestrator waits between items to avoid tripping
// third-party rate limits. The original behavior is a flat one-second
// sleep; FixedDelay(time.Second) reproduces it, TokenBucket smooths it,
// and None lets tests run batches without wall-clock waits.

type NonePacer struct{}

func None() NonePacer { return NonePacer{} }

func (NonePacer) Wait(ctx context.Context) error {
	return ctx.Err()
}

type FixedDelayPacer struct {
	delay time.Duration
}

func FixedDelay(delay time.Duration) FixedDelayPacer {
	return FixedDelayPacer{delay: delay}
}

func (p FixedDelayPacer) Wait(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type TokenBucketPacer struct {
	limiter *rate.Limiter
}

func TokenBucket(rps float64, burst int) *TokenBucketPacer {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &TokenBucketPacer{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (p *TokenBucketPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// FromConfig maps a pacing strategy name to an implementation. Unknown
// names are rejected rather than silently unpaced.
func FromConfig(strategy string, delay time.Duration, rps float64, burst int) (ports.Pacer, error) {
	switch strategy {
	case "none":
		return None(), nil
	case "fixed", "":
		if delay <= 0 {
			delay = time.Second
		}
		return FixedDelay(delay), nil
	case "bucket":
		return TokenBucket(rps, burst), nil
	default:
		return nil, fmt.Errorf("unknown pacing strategy %q", strategy)
	}
}
