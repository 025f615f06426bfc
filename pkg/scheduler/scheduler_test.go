package scheduler

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/wecco-dev/wecco/internal/errors"
)

func TestDrainRunsInOrder(t *testing.T) {
	s := New()
	var got []int
	for i := 0; i < 3; i++ {
		i := i
		s.Schedule(func() { got = append(got, i) })
	}
	if s.Pending() != 3 {
		t.Errorf("Pending() = %d, want 3", s.Pending())
	}

	if ran := s.Drain(); ran != 3 {
		t.Errorf("Drain() = %d, want 3", ran)
	}
	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Errorf("order = %v, want [0 1 2]", got)
	}
	if s.Pending() != 0 {
		t.Error("queue should be empty after Drain")
	}
}

func TestDrainRunsTasksScheduledByTasks(t *testing.T) {
	s := New()
	var got []string
	s.Schedule(func() {
		got = append(got, "outer")
		s.Schedule(func() { got = append(got, "inner") })
	})

	if ran := s.Drain(); ran != 2 {
		t.Errorf("Drain() = %d, want 2", ran)
	}
	if strings.Join(got, ",") != "outer,inner" {
		t.Errorf("got %v", got)
	}
}

func TestDrainRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	s := New(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	after := false
	s.Schedule(func() { panic("boom") })
	s.Schedule(func() { after = true })

	s.Drain()

	if !after {
		t.Error("task after a panic should still run")
	}
	if !strings.Contains(buf.String(), "task panic") || !strings.Contains(buf.String(), "W011") {
		t.Errorf("panic not logged: %s", buf.String())
	}
}

func TestScheduleNilIsIgnored(t *testing.T) {
	s := New()
	s.Schedule(nil)
	if s.Pending() != 0 {
		t.Error("nil task should not be queued")
	}
}

func TestRunAndDo(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan error, 1)
	go func() { stopped <- s.Run(ctx) }()

	value := 0
	if err := s.Do(context.Background(), func() error {
		value = 42
		return nil
	}); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if value != 42 {
		t.Errorf("value = %d, want 42", value)
	}

	err := s.Do(context.Background(), func() error { panic("bad") })
	if errors.Code(err) != "W011" {
		t.Errorf("Do() panic error code = %q, want W011", errors.Code(err))
	}

	cancel()
	select {
	case err := <-stopped:
		if err != context.Canceled {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestDoContextCancelled(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Do(ctx, func() error { return nil }); err != context.Canceled {
		t.Errorf("Do() = %v, want context.Canceled", err)
	}
}
