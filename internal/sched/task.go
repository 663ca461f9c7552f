package sched

import (
	"context"
	"fmt"
)

type taskState int

const (
	stateRunning taskState = iota
	stateParked
	stateReady
)

type stepResult struct {
	completed bool
	err       error
}

// Task represents one in-flight unit of work. All fields except state are
// set at submission and never change; state is guarded by the loop mutex.
type Task struct {
	name     string
	loop     *Loop
	ctx      context.Context
	fn       TaskFunc
	finalize Finalizer

	started bool
	state   taskState

	resume chan struct{}
	pause  chan stepResult
}

type taskContextKey struct{}

// fromContext extracts the running task, or nil when ctx does not belong
// to a scheduled task.
func fromContext(ctx context.Context) *Task {
	t, _ := ctx.Value(taskContextKey{}).(*Task)
	return t
}

// run is the task goroutine. It waits for the loop's first resume before
// touching the body, so start order is strictly the submission order.
func (t *Task) run() {
	<-t.resume
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("task %s panicked: %v", t.name, r)
			}
		}()
		err = t.fn(t.ctx)
	}()
	t.pause <- stepResult{completed: true, err: err}
}

// park publishes the task as suspended. It must run before any wake
// source is armed, otherwise a wake arriving between the two would be
// dropped by wakeTask's state check.
func (t *Task) park() {
	l := t.loop
	l.mu.Lock()
	if l.stopping {
		// Stay on the ready queue so the cancelled context is observed
		// promptly instead of waiting for an external wake.
		t.state = stateReady
		l.ready = append(l.ready, t)
	} else {
		t.state = stateParked
		l.parked[t] = struct{}{}
	}
	l.mu.Unlock()
}

// yieldToLoop hands attention back to the loop and blocks until the loop
// resumes the task. Must be called from the task goroutine, after park.
func (t *Task) yieldToLoop() {
	t.pause <- stepResult{}
	<-t.resume
	l := t.loop
	l.mu.Lock()
	t.state = stateRunning
	l.mu.Unlock()
}
