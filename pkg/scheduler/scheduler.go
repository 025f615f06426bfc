// Package scheduler provides the cooperative task queue that owns all
// render work.
//
// The display tree is single-threaded: every mutation, every render pass
// and every once-callback runs as a task on one Scheduler. Producers on
// other goroutines enqueue with Schedule or Do; the owner goroutine runs
// tasks either by calling Drain or by running the Run loop.
//
// Wake-ups are coalesced through a one-slot channel, so any number of
// Schedule calls between two loop iterations cost a single wake-up.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/wecco-dev/wecco/internal/errors"
)

// Task is a unit of work run on the owner goroutine.
type Task func()

// Scheduler is a FIFO task queue.
type Scheduler struct {
	mu     sync.Mutex
	queue  []Task
	wake   chan struct{}
	logger *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used to report recovered panics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates an empty scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		wake:   make(chan struct{}, 1),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule enqueues fn. It is safe to call from any goroutine, including
// from inside a running task; such tasks run in the same Drain.
func (s *Scheduler) Schedule(fn Task) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
		// Already signalled
	}
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Drain runs queued tasks in order until the queue is empty and returns
// how many ran. A panicking task is logged and does not stop the drain.
func (s *Scheduler) Drain() int {
	ran := 0
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return ran
		}
		fn := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.safeRun(fn)
		ran++
	}
}

// Run drains the queue whenever tasks are scheduled until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.Drain()
	for {
		select {
		case <-s.wake:
			s.Drain()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Do schedules fn and waits for it to finish. It must not be called from
// the goroutine that runs the queue. A panic inside fn is returned as an
// error.
func (s *Scheduler) Do(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	s.Schedule(func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = panicError(r)
				s.logPanic(r, debug.Stack())
			}
			done <- err
		}()
		err = fn()
	})

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// safeRun runs a task with panic recovery.
func (s *Scheduler) safeRun(fn Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic(r, debug.Stack())
		}
	}()
	fn()
}

func (s *Scheduler) logPanic(r any, stack []byte) {
	s.logger.Error("task panic",
		"code", "W011",
		"panic", r,
		"stack", string(stack))
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return errors.New("W011").Wrap(err)
	}
	return errors.New("W011").WithDetail(fmt.Sprint(r))
}
