package banner

import (
	"fmt"
	"strings"
	"sync"
)

// TwoWayBar renders a bar that grows from a center origin: positive
// progress fills rightward, negative fills leftward. Progress is clamped
// to [-1, 1] for display.
//
//	label [      ◀███│        ]
type TwoWayBar struct {
	label string
	style Style

	mu       sync.Mutex
	progress float64
}

// TwoWayOption configures a TwoWayBar.
type TwoWayOption func(*TwoWayBar)

// WithTwoWayStyle styles the filled segment.
func WithTwoWayStyle(s Style) TwoWayOption {
	return func(b *TwoWayBar) {
		b.style = s
	}
}

// NewTwoWayBar creates a TwoWayBar with the given label.
func NewTwoWayBar(label string, opts ...TwoWayOption) *TwoWayBar {
	b := &TwoWayBar{label: label}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Progress returns the current raw progress value.
func (b *TwoWayBar) Progress() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.progress
}

// SetProgress replaces the progress value.
func (b *TwoWayBar) SetProgress(v float64) {
	b.mu.Lock()
	b.progress = v
	b.mu.Unlock()
}

// Render implements Producer.
func (b *TwoWayBar) Render(width int) string {
	v := clamp(b.Progress(), -1, 1)

	half := barWidth(width, len(b.label)+8) / 2
	fill := int(clamp(v, -1, 1) * float64(half))

	left := strings.Repeat(" ", half)
	right := strings.Repeat(" ", half)
	if fill >= 0 {
		right = applyStyle(b.style, strings.Repeat("█", fill)) + strings.Repeat(" ", half-fill)
	} else {
		n := -fill
		left = strings.Repeat(" ", half-n) + applyStyle(b.style, strings.Repeat("█", n))
	}
	return fmt.Sprintf("%s [%s│%s]", b.label, left, right)
}
