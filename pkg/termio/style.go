package termio

import "github.com/muesli/termenv"

// Visual categories applied by the logging helpers. Styling happens only
// in interactive mode; redirected output stays plain text.

// Error writes text styled as an error (red).
func (c *Channel) Error(text string) {
	c.Write(c.stylize(text, func(s termenv.Style) termenv.Style {
		return s.Foreground(c.profile.Color("1"))
	}))
}

// Help writes text styled as help/usage output (cyan).
func (c *Channel) Help(text string) {
	c.Write(c.stylize(text, func(s termenv.Style) termenv.Style {
		return s.Foreground(c.profile.Color("6"))
	}))
}

// Status writes text styled as a low-emphasis status message (faint).
func (c *Channel) Status(text string) {
	c.Write(c.stylize(text, func(s termenv.Style) termenv.Style {
		return s.Faint()
	}))
}

func (c *Channel) stylize(text string, apply func(termenv.Style) termenv.Style) string {
	if !c.interactive || c.profile == termenv.Ascii {
		return text
	}
	return apply(c.profile.String(text)).String()
}
