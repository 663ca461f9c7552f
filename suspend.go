package conch

import (
	"context"
	"time"

	"github.com/conchshell/conch/internal/sched"
)

// Sleep suspends the calling command for d, letting other commands and
// banner refreshes run. It returns the context error when the session
// shuts down first; treat that as "stop gracefully", not as a failure.
func Sleep(ctx context.Context, d time.Duration) error {
	return sched.Sleep(ctx, d)
}

// Yield gives other scheduled work a turn and resumes on the next pass.
func Yield(ctx context.Context) error {
	return sched.Yield(ctx)
}

// Await suspends the calling command until ch is closed or receives.
func Await(ctx context.Context, ch <-chan struct{}) error {
	return sched.Await(ctx, ch)
}
