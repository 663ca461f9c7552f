package termio

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// DefaultWidth is used when the sink is not a measurable terminal.
const DefaultWidth = 80

// Channel serializes writes to a shared terminal. All methods are safe for
// concurrent use; each acquires the channel lock for one atomic write.
type Channel struct {
	mu          sync.Mutex
	w           io.Writer
	interactive bool
	width       int
	prompt      string
	profile     termenv.Profile
	overlay     func() []string

	detected   bool
	profileSet bool
}

// Option configures a Channel.
type Option func(*Channel)

// WithInteractive forces interactive (or plain) mode regardless of what
// the sink looks like. The shell uses this to require that both ends of
// the session are terminals; tests use it to exercise the cursor-control
// paths against plain buffers.
func WithInteractive(interactive bool) Option {
	return func(c *Channel) {
		c.interactive = interactive
		c.detected = true
	}
}

// WithWidth pins the terminal width instead of probing the sink.
func WithWidth(width int) Option {
	return func(c *Channel) {
		if width > 0 {
			c.width = width
		}
	}
}

// WithPrompt sets the prompt text redisplayed after interactive writes.
func WithPrompt(prompt string) Option {
	return func(c *Channel) {
		c.prompt = prompt
	}
}

// WithProfile pins the termenv color profile used for styled categories.
func WithProfile(profile termenv.Profile) Option {
	return func(c *Channel) {
		c.profile = profile
		c.profileSet = true
	}
}

// New creates a Channel writing to w. Unless overridden by options, the
// channel is interactive only when w is a real terminal, and the color
// profile is detected from the environment.
func New(w io.Writer, opts ...Option) *Channel {
	if w == nil {
		w = os.Stdout
	}
	c := &Channel{w: w}
	for _, opt := range opts {
		opt(c)
	}
	if !c.detected {
		c.interactive = isTerminal(w)
	}
	if !c.profileSet {
		if c.interactive {
			c.profile = termenv.NewOutput(w).ColorProfile()
		} else {
			c.profile = termenv.Ascii
		}
	}
	return c
}

// Interactive reports whether cursor-control rendering is in use.
func (c *Channel) Interactive() bool {
	return c.interactive
}

// Width returns the usable line width.
func (c *Channel) Width() int {
	if c.width > 0 {
		return c.width
	}
	if f, ok := c.w.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return DefaultWidth
}

// SetOverlay installs the function that produces the current banner lines.
// Passing nil removes the overlay.
func (c *Channel) SetOverlay(f func() []string) {
	c.mu.Lock()
	c.overlay = f
	c.mu.Unlock()
}

// Write emits one message. Interactive mode erases the prompt line, writes
// the message, redraws the overlay below a fresh prompt line and leaves
// the cursor after the redisplayed prompt. Non-interactive mode appends
// the message with a trailing newline only.
func (c *Channel) Write(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.interactive {
		fmt.Fprint(c.w, text+"\n")
		return
	}
	var b strings.Builder
	b.WriteString(c.eraseLine())
	b.WriteString(text)
	b.WriteString("\n")
	c.writeOverlayTo(&b, c.overlayLines())
	b.WriteString(c.prompt)
	fmt.Fprint(c.w, b.String())
}

// Close emits a final message without redisplaying the prompt. The shell
// uses it for the exit line once the session has drained.
func (c *Channel) Close(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.interactive {
		fmt.Fprint(c.w, text+"\n")
		return
	}
	fmt.Fprint(c.w, c.eraseLine()+text+"\n")
}

// Prompt displays the prompt. It is a no-op in non-interactive mode.
func (c *Channel) Prompt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.interactive {
		return
	}
	fmt.Fprint(c.w, "\r"+c.prompt)
}

// RepaintOverlay redraws the overlay lines in place, assuming the cursor
// rests on the prompt line. previous is how many overlay rows the last
// paint produced, so shrinking stacks leave no stale rows behind. The
// prompt is redisplayed; any partially typed input is not re-echoed.
func (c *Channel) RepaintOverlay(previous int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.interactive {
		return 0
	}
	lines := c.overlayLines()
	rows := len(lines)
	if previous > rows {
		rows = previous
	}
	if rows == 0 {
		return 0
	}
	var b strings.Builder
	for i := 0; i < rows; i++ {
		b.WriteString("\n")
		b.WriteString(c.eraseLine())
		if i < len(lines) {
			b.WriteString(c.clip(lines[i]))
		}
	}
	b.WriteString(cursorUp(rows))
	b.WriteString("\r")
	b.WriteString(c.prompt)
	fmt.Fprint(c.w, b.String())
	return len(lines)
}

// overlayLines snapshots the overlay under the channel lock.
func (c *Channel) overlayLines() []string {
	if c.overlay == nil {
		return nil
	}
	return c.overlay()
}

// writeOverlayTo appends a prompt placeholder row plus the overlay rows
// to b, then moves the cursor back up to the prompt row. Caller appends
// the prompt text afterwards. No-op when the overlay is empty.
func (c *Channel) writeOverlayTo(b *strings.Builder, lines []string) {
	n := len(lines)
	if n == 0 {
		return
	}
	// Erase the row the prompt will move onto, leave it for the prompt,
	// then draw each banner row beneath it.
	b.WriteString(c.eraseLine())
	for _, line := range lines {
		b.WriteString("\n")
		b.WriteString(c.eraseLine())
		b.WriteString(c.clip(line))
	}
	b.WriteString(cursorUp(n))
	b.WriteString("\r")
}

// eraseLine blanks the current row: carriage return, spaces across the
// terminal width, carriage return.
func (c *Channel) eraseLine() string {
	return "\r" + strings.Repeat(" ", c.Width()) + "\r"
}

// clip bounds a styled line to the terminal width so overlay rows never
// wrap and corrupt the row accounting.
func (c *Channel) clip(line string) string {
	return truncate.String(line, uint(c.Width()))
}

func cursorUp(n int) string {
	return fmt.Sprintf(termenv.CSI+termenv.CursorUpSeq, n)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
