package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{MaxAttempts: 3, Delay: time.Second, Sleeper: func(time.Duration) {
		t.Fatal("sleeper should not run on immediate success")
	}}, func(context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestDoRetriesWithFixedDelay(t *testing.T) {
	var slept []time.Duration
	calls := 0
	boom := errors.New("boom")

	err := Do(context.Background(), Policy{MaxAttempts: 3, Delay: 2 * time.Second, Sleeper: func(d time.Duration) {
		slept = append(slept, d)
	}}, func(context.Context) error {
		calls++
		if calls < 3 {
			return boom
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if len(slept) != 2 || slept[0] != 2*time.Second || slept[1] != 2*time.Second {
		t.Fatalf("unexpected sleep schedule: %v", slept)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	boom := errors.New("boom")

	err := Do(context.Background(), Policy{MaxAttempts: 3, Sleeper: func(time.Duration) {}}, func(context.Context) error {
		calls++
		return boom
	})
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}

func TestDoStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := Do(ctx, Policy{MaxAttempts: 5, Delay: time.Second, Sleeper: func(time.Duration) {
		cancel()
	}}, func(context.Context) error {
		calls++
		return errors.New("boom")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected retry loop to stop after cancel, got %d calls", calls)
	}
}

func TestDoTreatsZeroAttemptsAsOne(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{}, func(context.Context) error {
		calls++
		return errors.New("boom")
	})
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if err == nil {
		t.Fatal("expected error")
	}
}
