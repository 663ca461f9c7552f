package banner

import (
	"fmt"
	"strings"
	"sync"
)

// ProgressBar renders a classic bounded progress bar:
//
//	label [██████            ]  33%
//
// Progress outside [0, 1] is clamped for display, so callers may drive it
// past the bounds without corrupting the bar.
type ProgressBar struct {
	label     string
	style     Style
	fullStyle Style

	mu       sync.Mutex
	progress float64
}

// ProgressOption configures a ProgressBar.
type ProgressOption func(*ProgressBar)

// WithProgressStyle styles the bar segment while it is filling.
func WithProgressStyle(s Style) ProgressOption {
	return func(p *ProgressBar) {
		p.style = s
	}
}

// WithFullStyle styles the bar segment once progress reaches 1.
func WithFullStyle(s Style) ProgressOption {
	return func(p *ProgressBar) {
		p.fullStyle = s
	}
}

// NewProgressBar creates a ProgressBar with the given label.
func NewProgressBar(label string, opts ...ProgressOption) *ProgressBar {
	p := &ProgressBar{label: label}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Progress returns the current raw (unclamped) progress value.
func (p *ProgressBar) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.progress
}

// SetProgress replaces the progress value.
func (p *ProgressBar) SetProgress(v float64) {
	p.mu.Lock()
	p.progress = v
	p.mu.Unlock()
}

// Add advances progress by delta.
func (p *ProgressBar) Add(delta float64) {
	p.mu.Lock()
	p.progress += delta
	p.mu.Unlock()
}

// Render implements Producer.
func (p *ProgressBar) Render(width int) string {
	v := p.Progress()
	shown := clamp(v, 0, 1)

	w := barWidth(width, len(p.label)+10)
	filled := int(shown * float64(w))
	bar := strings.Repeat("█", filled) + strings.Repeat(" ", w-filled)

	style := p.style
	if shown >= 1 && p.fullStyle != nil {
		style = p.fullStyle
	}
	return fmt.Sprintf("%s [%s] %3.0f%%", p.label, applyStyle(style, bar), shown*100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
