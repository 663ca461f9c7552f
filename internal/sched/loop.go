package sched

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// TaskFunc is the body of a scheduled task. The context carries the task
// identity for the suspension helpers and is cancelled on shutdown.
type TaskFunc func(ctx context.Context) error

// Finalizer is invoked exactly once per task on the loop goroutine after
// the body returns. Finalizer invocations never overlap.
type Finalizer func(err error)

// Loop is the cooperative scheduler. Create one with New, start it with
// Run on a dedicated goroutine, feed it with Submit from anywhere.
type Loop struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger

	mu       sync.Mutex
	ready    []*Task
	parked   map[*Task]struct{}
	active   int
	stopping bool

	wake chan struct{}
	done chan struct{}
}

// New creates a Loop whose task contexts descend from parent.
func New(parent context.Context, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ctx, cancel := context.WithCancel(parent)
	return &Loop{
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
		parked: make(map[*Task]struct{}),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Submit enqueues a task. It is safe to call from any goroutine and never
// blocks. It returns false once the loop is shutting down, in which case
// neither fn nor fin will run.
func (l *Loop) Submit(name string, fn TaskFunc, fin Finalizer) bool {
	l.mu.Lock()
	if l.stopping {
		l.mu.Unlock()
		return false
	}
	t := &Task{
		name:     name,
		loop:     l,
		fn:       fn,
		finalize: fin,
		resume:   make(chan struct{}),
		pause:    make(chan stepResult),
	}
	t.ctx = context.WithValue(l.ctx, taskContextKey{}, t)
	l.active++
	l.ready = append(l.ready, t)
	l.mu.Unlock()
	l.notify()
	return true
}

// Run executes tasks until Shutdown has been called and every task has
// been finalized. It must be called exactly once, on its own goroutine.
func (l *Loop) Run() {
	defer close(l.done)
	for {
		t := l.next()
		if t == nil {
			return
		}
		l.step(t)
	}
}

// Shutdown stops admission, cancels every task context and resumes parked
// tasks so they observe the cancellation at their suspension point. It
// does not wait; use Wait for that.
func (l *Loop) Shutdown() {
	l.mu.Lock()
	if l.stopping {
		l.mu.Unlock()
		return
	}
	l.stopping = true
	l.cancel()
	for t := range l.parked {
		delete(l.parked, t)
		t.state = stateReady
		l.ready = append(l.ready, t)
	}
	l.mu.Unlock()
	l.notify()
}

// Wait blocks until the loop has fully drained and returned.
func (l *Loop) Wait() {
	<-l.done
}

// Context returns the shared task context. It is cancelled by Shutdown.
func (l *Loop) Context() context.Context {
	return l.ctx
}

// next blocks until a task is runnable, or returns nil once the loop is
// stopping and nothing remains in flight.
func (l *Loop) next() *Task {
	for {
		l.mu.Lock()
		if len(l.ready) > 0 {
			t := l.ready[0]
			l.ready = l.ready[1:]
			l.mu.Unlock()
			return t
		}
		if l.stopping && l.active == 0 {
			l.mu.Unlock()
			return nil
		}
		l.mu.Unlock()
		<-l.wake
	}
}

// step gives t the loop's attention until it suspends or completes.
func (l *Loop) step(t *Task) {
	if !t.started {
		t.started = true
		go t.run()
	}
	t.resume <- struct{}{}
	st := <-t.pause
	if !st.completed {
		return
	}
	l.mu.Lock()
	l.active--
	l.mu.Unlock()
	l.logger.Debug("task finished", "task", t.name, "err", st.err)
	if t.finalize != nil {
		t.finalize(st.err)
	}
	l.notify()
}

// wakeTask moves a parked task back onto the ready queue. Idempotent:
// concurrent wake sources (timers, signal waiters, Shutdown) may race.
func (l *Loop) wakeTask(t *Task) {
	l.mu.Lock()
	if t.state != stateParked {
		l.mu.Unlock()
		return
	}
	delete(l.parked, t)
	t.state = stateReady
	l.ready = append(l.ready, t)
	l.mu.Unlock()
	l.notify()
}

func (l *Loop) notify() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}
