package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunnerAdd(t *testing.T) {
	r := New(context.Background(), nil, 0)

	if _, err := r.Add("refresh", "@every 1h", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Add("bad", "not a spec", func(context.Context) error { return nil }); err == nil {
		t.Error("expected error for invalid spec")
	}
	if r.Entries() != 1 {
		t.Errorf("expected 1 entry, got %d", r.Entries())
	}
}

func TestRunnerRunAppliesTimeout(t *testing.T) {
	r := New(context.Background(), nil, 50*time.Millisecond)

	var deadline bool
	r.run("job", func(ctx context.Context) error {
		_, deadline = ctx.Deadline()
		return nil
	})
	if !deadline {
		t.Error("expected job context to carry a deadline")
	}

	// A failing job is logged, never propagated.
	r.run("failing", func(context.Context) error { return errors.New("boom") })
}

func TestRunnerStartStop(t *testing.T) {
	ran := make(chan struct{}, 1)
	r := New(context.Background(), nil, time.Second)
	if _, err := r.Add("tick", "@every 1s", func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	r.Start()
	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Error("expected job to run")
	}
	r.Stop()
}
