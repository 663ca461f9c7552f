package banner

import (
	"sync"
)

// spinnerFrames is the rotating bar animation.
var spinnerFrames = []string{"|", "/", "-", "\\"}

// BarSpinner renders a label with a rotating bar that advances one frame
// per render, so the refresh interval is its animation speed.
type BarSpinner struct {
	label string
	style Style

	mu    sync.Mutex
	frame int
}

// SpinnerOption configures a BarSpinner.
type SpinnerOption func(*BarSpinner)

// WithSpinnerStyle styles the whole spinner line.
func WithSpinnerStyle(s Style) SpinnerOption {
	return func(b *BarSpinner) {
		b.style = s
	}
}

// NewBarSpinner creates a BarSpinner with the given label.
func NewBarSpinner(label string, opts ...SpinnerOption) *BarSpinner {
	b := &BarSpinner{label: label}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Render implements Producer.
func (b *BarSpinner) Render(width int) string {
	b.mu.Lock()
	frame := spinnerFrames[b.frame]
	b.frame = (b.frame + 1) % len(spinnerFrames)
	b.mu.Unlock()
	return applyStyle(b.style, frame+" "+b.label)
}
