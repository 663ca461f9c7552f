package sched

import (
	"context"
	"sync/atomic"
	"time"
)

// noDeadline disables the timer leg of Wait.
const noDeadline time.Duration = -1

// Sleep suspends the calling task for d, yielding the loop to other tasks.
// It returns the context error if the scheduler shuts down (or ctx is
// otherwise cancelled) before the delay elapses. Outside a task it
// degrades to a plain context-aware sleep.
func Sleep(ctx context.Context, d time.Duration) error {
	_, err := Wait(ctx, nil, d)
	return err
}

// Yield gives other runnable tasks a turn and resumes as soon as the loop
// comes back around. Equivalent to Sleep(ctx, 0).
func Yield(ctx context.Context) error {
	return Sleep(ctx, 0)
}

// Await suspends the calling task until ch is closed (or receives).
// It returns the context error if cancellation wins.
func Await(ctx context.Context, ch <-chan struct{}) error {
	_, err := Wait(ctx, ch, noDeadline)
	return err
}

// Wait is the general suspension point: it parks the calling task until ch
// fires, d elapses (d < 0 disables the timer), or ctx is cancelled.
// signaled reports whether ch fired; err carries the cancellation.
func Wait(ctx context.Context, ch <-chan struct{}, d time.Duration) (signaled bool, err error) {
	t := fromContext(ctx)
	if t == nil {
		return waitDetached(ctx, ch, d)
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	// Publish the parked state before arming any wake source so a wake
	// firing immediately is never dropped.
	t.park()

	var fired atomic.Bool
	var timer *time.Timer
	if d >= 0 {
		timer = time.AfterFunc(d, func() { t.loop.wakeTask(t) })
	}
	var stop chan struct{}
	if ch != nil {
		stop = make(chan struct{})
		go func() {
			select {
			case <-ch:
				fired.Store(true)
				t.loop.wakeTask(t)
			case <-stop:
			}
		}()
	}

	t.yieldToLoop()

	if timer != nil {
		timer.Stop()
	}
	if stop != nil {
		close(stop)
	}
	if fired.Load() {
		return true, nil
	}
	return false, ctx.Err()
}

// waitDetached serves callers that are not scheduled tasks.
func waitDetached(ctx context.Context, ch <-chan struct{}, d time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var timerC <-chan time.Time
	if d >= 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		timerC = timer.C
	}
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-ch:
		return true, nil
	case <-timerC:
		return false, nil
	}
}
