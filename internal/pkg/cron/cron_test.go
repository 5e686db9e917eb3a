package cron

import (
	"context"
	"testing"
	"time"
)

func TestRegisterReplacesByName(t *testing.T) {
	s := New()
	s.Register(Job{Name: "job", Interval: 5 * time.Minute, Fn: func(ctx context.Context) error { return nil }})
	s.Reschedule(Job{Name: "job", Interval: 15 * time.Minute, Fn: func(ctx context.Context) error { return nil }})

	if got := len(s.List()); got != 1 {
		t.Fatalf("expected a single job after reschedule, got %d", got)
	}
	interval, ok := s.Interval("job")
	if !ok {
		t.Fatal("job not found")
	}
	if interval != 15*time.Minute {
		t.Errorf("interval = %v, want 15m", interval)
	}
}

func TestIntervalUnknownJob(t *testing.T) {
	s := New()
	if _, ok := s.Interval("ghost"); ok {
		t.Error("unknown job must report false")
	}
}

func TestDeregister(t *testing.T) {
	s := New()
	s.Register(Job{Name: "job", Interval: time.Minute, Fn: func(ctx context.Context) error { return nil }})
	s.Deregister("job")
	if got := len(s.List()); got != 0 {
		t.Errorf("expected no jobs, got %d", got)
	}
}

func TestStartRunsJobAtInterval(t *testing.T) {
	fired := make(chan struct{}, 1)
	s := New()
	s.Register(Job{
		Name:     "ticker",
		Interval: 10 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			select {
			case fired <- struct{}{}:
			default:
			}
			return nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("job never fired")
	}
}

func TestRescheduleAfterStart(t *testing.T) {
	s := New()
	s.Register(Job{Name: "job", Interval: time.Hour, Fn: func(ctx context.Context) error { return nil }})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	s.Reschedule(Job{Name: "job", Interval: 30 * time.Minute, Fn: func(ctx context.Context) error { return nil }})

	if got := len(s.List()); got != 1 {
		t.Fatalf("expected a single job, got %d", got)
	}
	if interval, _ := s.Interval("job"); interval != 30*time.Minute {
		t.Errorf("interval = %v, want 30m", interval)
	}
}

func TestGetTaskTracksOutcome(t *testing.T) {
	fired := make(chan struct{}, 1)
	s := New()
	s.Register(Job{
		Name:     "job",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			fired <- struct{}{}
			return nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	if err := s.Run(ctx, "job"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	<-fired

	deadline := time.Now().Add(2 * time.Second)
	for {
		res, err := s.GetTask("job")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status == StatusFulfill {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("job never reached fulfill, last status %q", res.Status)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
