package telegraph

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewScheduler_Validation(t *testing.T) {
	noop := func(context.Context) error { return nil }
	if _, err := NewScheduler("not a cron", noop, nil); err == nil {
		t.Error("expected parse error")
	}
	if _, err := NewScheduler("0 9 * * 1-5", nil, nil); err == nil {
		t.Error("expected error for nil job")
	}
	if _, err := NewScheduler("0 9 * * 1-5", noop, nil); err != nil {
		t.Errorf("valid schedule: %v", err)
	}
}

func TestScheduler_Next(t *testing.T) {
	s, err := NewScheduler("0 9 * * 1-5", func(context.Context) error { return nil }, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Saturday 2026-03-14 10:00 -> Monday 2026-03-16 09:00.
	from := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)
	want := time.Date(2026, 3, 16, 9, 0, 0, 0, time.Local)
	if got := s.Next(from); !got.Equal(want) {
		t.Errorf("Next = %v, want %v", got, want)
	}
}

func TestScheduler_NextDurationUsesOneInstant(t *testing.T) {
	s, err := NewScheduler("* * * * *", func(context.Context) error { return nil }, nil)
	if err != nil {
		t.Fatal(err)
	}
	// The clock moves 10s on every read.
	clock := time.Date(2026, 3, 10, 8, 59, 30, 0, time.Local)
	s.now = func() time.Time {
		now := clock
		clock = clock.Add(10 * time.Second)
		return now
	}
	if got := s.nextDuration(); got != 30*time.Second {
		t.Errorf("nextDuration = %v, want 30s", got)
	}
}

func TestScheduler_RunFiresAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	s, err := NewScheduler("* * * * *", func(context.Context) error {
		runs.Add(1)
		cancel()
		return nil
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Pin the clock just before a minute boundary so the first fire is ~10ms away.
	s.now = func() time.Time { return time.Date(2026, 3, 10, 8, 59, 59, 990_000_000, time.Local) }

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
	if runs.Load() != 1 {
		t.Errorf("runs = %d, want 1", runs.Load())
	}
}

func TestScheduler_StopsBeforeFirstFire(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, _ := NewScheduler("0 9 * * 1-5", func(context.Context) error {
		t.Error("job should not run")
		return nil
	}, nil)
	if err := s.Run(ctx); err != nil {
		t.Errorf("Run = %v, want nil", err)
	}
}
