package banner

// Producer supplies the current text of one banner line.
type Producer interface {
	// Render returns the line to display, sized for the given terminal
	// width. The result may exceed width; the output channel clips it.
	// Render runs while the output channel lock is held: it must only
	// format state, never write to the session output.
	Render(width int) string
}

// Style transforms a rendered segment, typically wrapping it in termenv
// escape sequences. A nil Style leaves the segment unchanged.
type Style func(string) string

func applyStyle(s Style, text string) string {
	if s == nil {
		return text
	}
	return s(text)
}

// barWidth computes the cell budget for the moving part of a bar banner
// once the label and decorations are accounted for.
func barWidth(total, reserved int) int {
	w := total - reserved
	if w < 10 {
		w = 10
	}
	return w
}
