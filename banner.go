package conch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/conchshell/conch/internal/sched"
	"github.com/conchshell/conch/pkg/banner"
	"github.com/conchshell/conch/pkg/domain"
)

// BannerHandle controls one running banner. Handles are safe to Stop from
// command handlers and from outside the session.
type BannerHandle struct {
	shell    *Shell
	producer banner.Producer
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Banner pushes a banner onto the session stack and starts its refresh
// task. The banner renders immediately, then every refresh interval until
// stopped or the session drains. Banners stack: each renders on its own
// row, newest at the bottom. In non-interactive sessions the handle is
// valid but nothing is drawn.
func (s *Shell) Banner(p banner.Producer, refresh time.Duration) (*BannerHandle, error) {
	if p == nil {
		return nil, errors.New("banner: nil producer")
	}
	if refresh <= 0 {
		return nil, errors.New("banner: refresh interval must be positive")
	}
	s.mu.Lock()
	loop := s.loop
	s.mu.Unlock()
	if loop == nil {
		return nil, domain.ErrShellStopped
	}

	h := &BannerHandle{
		shell:    s,
		producer: p,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	s.mu.Lock()
	s.banners = append(s.banners, h)
	s.mu.Unlock()

	ok := loop.Submit("banner", func(ctx context.Context) error {
		for {
			s.repaintOverlay()
			signaled, err := sched.Wait(ctx, h.stop, refresh)
			if signaled || err != nil {
				return nil
			}
		}
	}, func(error) {
		s.detach(h)
		s.repaintOverlay()
		close(h.done)
	})
	if !ok {
		s.detach(h)
		close(h.done)
		return nil, domain.ErrShellStopped
	}
	s.logger.Debug("banner started", "refresh", refresh)
	return h, nil
}

// Stop signals the refresh task and waits for the cleanup repaint that
// erases the banner's row. It suspends cooperatively when called from
// inside a command, and is idempotent.
func (h *BannerHandle) Stop(ctx context.Context) error {
	h.stopOnce.Do(func() { close(h.stop) })
	select {
	case <-h.done:
		return nil
	default:
	}
	return sched.Await(ctx, h.done)
}

// detach removes h from the banner stack.
func (s *Shell) detach(h *BannerHandle) {
	s.mu.Lock()
	for i, cur := range s.banners {
		if cur == h {
			s.banners = append(s.banners[:i], s.banners[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
}

// overlayLines renders the current banner stack. The output channel calls
// this under its own lock, so it must not call locked channel methods.
func (s *Shell) overlayLines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.banners) == 0 {
		return nil
	}
	lines := make([]string, 0, len(s.banners))
	for _, h := range s.banners {
		lines = append(lines, h.producer.Render(s.width))
	}
	return lines
}

// repaintOverlay redraws the banner rows in place, remembering how many
// rows were painted so a shrinking stack erases its leftovers.
func (s *Shell) repaintOverlay() {
	s.mu.Lock()
	previous := s.overlayRows
	s.mu.Unlock()

	rows := s.channel.RepaintOverlay(previous)

	s.mu.Lock()
	s.overlayRows = rows
	s.mu.Unlock()
}
