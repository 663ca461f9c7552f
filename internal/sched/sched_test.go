package sched_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conchshell/conch/internal/sched"
)

func startLoop(t *testing.T) *sched.Loop {
	t.Helper()
	l := sched.New(t.Context(), nil)
	go l.Run()
	t.Cleanup(func() {
		l.Shutdown()
		l.Wait()
	})
	return l
}

func TestTasksStartInSubmissionOrder(t *testing.T) {
	l := startLoop(t)

	var order []string
	done := make(chan struct{})
	for _, name := range []string{"first", "second", "third"} {
		name := name
		ok := l.Submit(name, func(ctx context.Context) error {
			order = append(order, name)
			return nil
		}, nil)
		require.True(t, ok)
	}
	l.Submit("sentinel", func(ctx context.Context) error {
		close(done)
		return nil
	}, nil)

	<-done
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestSubmitDoesNotBlockWhileTaskSleeps(t *testing.T) {
	l := startLoop(t)

	var order []string
	slowDone := make(chan struct{})
	l.Submit("slow", func(ctx context.Context) error {
		if err := sched.Sleep(ctx, 50*time.Millisecond); err != nil {
			return err
		}
		order = append(order, "slow")
		close(slowDone)
		return nil
	}, nil)

	fastDone := make(chan struct{})
	ok := l.Submit("fast", func(ctx context.Context) error {
		order = append(order, "fast")
		close(fastDone)
		return nil
	}, nil)
	require.True(t, ok)

	select {
	case <-fastDone:
	case <-time.After(time.Second):
		t.Fatal("fast task starved while slow task slept")
	}
	<-slowDone
	assert.Equal(t, []string{"fast", "slow"}, order)
}

func TestYieldInterleavesRunnableTasks(t *testing.T) {
	l := startLoop(t)

	var order []string
	done := make(chan struct{})
	l.Submit("a", func(ctx context.Context) error {
		order = append(order, "a1")
		if err := sched.Yield(ctx); err != nil {
			return err
		}
		order = append(order, "a2")
		return nil
	}, nil)
	l.Submit("b", func(ctx context.Context) error {
		order = append(order, "b1")
		return nil
	}, func(error) { close(done) })

	<-done
	// Give a its second step.
	fin := make(chan struct{})
	l.Submit("flush", func(ctx context.Context) error { return nil }, func(error) { close(fin) })
	<-fin
	assert.Equal(t, []string{"a1", "b1", "a2"}, order)
}

func TestFinalizersRunOncePerTask(t *testing.T) {
	l := startLoop(t)

	const n = 20
	counts := make(map[string]int)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		name := string(rune('a' + i))
		l.Submit(name, func(ctx context.Context) error { return nil }, func(error) {
			counts[name]++ // finalizers never overlap, no lock needed
			wg.Done()
		})
	}
	wg.Wait()
	require.Len(t, counts, n)
	for name, c := range counts {
		assert.Equal(t, 1, c, "task %s", name)
	}
}

func TestShutdownCancelsSleepingTask(t *testing.T) {
	l := sched.New(t.Context(), nil)
	go l.Run()

	errs := make(chan error, 1)
	l.Submit("sleeper", func(ctx context.Context) error {
		return sched.Sleep(ctx, time.Minute)
	}, func(err error) { errs <- err })

	time.Sleep(20 * time.Millisecond)
	l.Shutdown()
	l.Wait()

	err := <-errs
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubmitAfterShutdownIsRejected(t *testing.T) {
	l := sched.New(t.Context(), nil)
	go l.Run()
	l.Shutdown()
	l.Wait()

	ok := l.Submit("late", func(ctx context.Context) error {
		t.Error("task ran after shutdown")
		return nil
	}, nil)
	assert.False(t, ok)
}

func TestAwaitResumesOnSignal(t *testing.T) {
	l := startLoop(t)

	sig := make(chan struct{})
	done := make(chan error, 1)
	l.Submit("waiter", func(ctx context.Context) error {
		return sched.Await(ctx, sig)
	}, func(err error) { done <- err })

	time.Sleep(20 * time.Millisecond)
	close(sig)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Await did not resume after signal")
	}
}

func TestWaitReportsWhichLegFired(t *testing.T) {
	l := startLoop(t)

	sig := make(chan struct{})
	close(sig)
	type result struct {
		signaled bool
		err      error
	}
	results := make(chan result, 2)
	l.Submit("signaled", func(ctx context.Context) error {
		s, err := sched.Wait(ctx, sig, time.Second)
		results <- result{s, err}
		return nil
	}, nil)
	l.Submit("timed", func(ctx context.Context) error {
		s, err := sched.Wait(ctx, nil, 10*time.Millisecond)
		results <- result{s, err}
		return nil
	}, nil)

	signaled := 0
	for i := 0; i < 2; i++ {
		got := <-results
		require.NoError(t, got.err)
		if got.signaled {
			signaled++
		}
	}
	assert.Equal(t, 1, signaled)
}

func TestWaitOutsideTaskDegradesToSelect(t *testing.T) {
	sig := make(chan struct{})
	close(sig)
	signaled, err := sched.Wait(t.Context(), sig, time.Second)
	require.NoError(t, err)
	assert.True(t, signaled)

	signaled, err = sched.Wait(t.Context(), nil, 5*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, signaled)
}

func TestPanicInTaskBecomesError(t *testing.T) {
	l := startLoop(t)

	errs := make(chan error, 1)
	l.Submit("boom", func(ctx context.Context) error {
		panic("kaboom")
	}, func(err error) { errs <- err })

	select {
	case err := <-errs:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "panicked")
		assert.Contains(t, err.Error(), "kaboom")
	case <-time.After(time.Second):
		t.Fatal("panicking task was never finalized")
	}
}
