/*
Package banner contains the text producers rendered as transient status
lines by a shell session.

A producer only answers "what is your current text" for a given width; the
shell owns when and where that text is painted. Producers are mutated from
command tasks while the refresh loop renders them, so every implementation
here is safe for concurrent use.

Styling hooks accept a plain func(string) string so callers can wrap
segments with termenv (or leave them unstyled for tests and redirected
output).
*/
package banner
