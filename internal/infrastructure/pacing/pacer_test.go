package pacing

import (
	"context"
	"testing"
	"time"
)

func TestNoneReturnsImmediately(t *testing.T) {
	start := time.Now()
	if err := None().Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Fatalf("Wait() took %v, expected immediate return", elapsed)
	}
}

func TestNonePropagatesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := None().Wait(ctx); err != context.Canceled {
		t.Fatalf("Wait() error = %v, want context.Canceled", err)
	}
}

func TestFixedDelayWaits(t *testing.T) {
	start := time.Now()
	if err := FixedDelay(30 * time.Millisecond).Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Fatalf("Wait() returned after %v, want >= 30ms", elapsed)
	}
}

func TestFixedDelayAbortsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- FixedDelay(10 * time.Second).Wait(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Wait() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait() did not return after cancellation")
	}
}

func TestFixedDelayZeroDoesNotBlock(t *testing.T) {
	if err := FixedDelay(0).Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
}

func TestTokenBucketAllowsBurst(t *testing.T) {
	p := TokenBucket(1, 3)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() #%d error = %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("burst of 3 took %v, expected no throttling", elapsed)
	}
}

func TestFromConfig(t *testing.T) {
	cases := []struct {
		strategy string
		wantErr  bool
	}{
		{strategy: "none"},
		{strategy: "fixed"},
		{strategy: ""},
		{strategy: "bucket"},
		{strategy: "adaptive", wantErr: true},
	}
	for _, tc := range cases {
		p, err := FromConfig(tc.strategy, time.Second, 2, 1)
		if tc.wantErr {
			if err == nil {
				t.Errorf("FromConfig(%q) expected error", tc.strategy)
			}
			continue
		}
		if err != nil {
			t.Errorf("FromConfig(%q) error = %v", tc.strategy, err)
			continue
		}
		if p == nil {
			t.Errorf("FromConfig(%q) returned nil pacer", tc.strategy)
		}
	}
}
