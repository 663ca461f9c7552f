package domain

import (
	"errors"
	"fmt"
)

// ErrShellStopped is returned when work is submitted to a shell that is no
// longer accepting commands.
var ErrShellStopped = errors.New("shell is not accepting commands")

// CommandError signals a recoverable failure to the shell.
//
// When a task finishes with a CommandError the shell logs the message and
// keeps accepting input, in contrast to any other error kind which stops
// the session. Command bodies should wrap expected validation failures in
// a CommandError; anything they let escape untyped is classified as fatal.
type CommandError struct {
	// Message is the human-readable text logged to the session output.
	Message string

	// Usage, when non-empty, is printed before Message. The argument
	// binder fills it with the offending command's usage line.
	Usage string
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Usage != "" {
		return e.Usage + "\n" + e.Message
	}
	return e.Message
}

// Errorf builds a recoverable CommandError with a formatted message.
func Errorf(format string, args ...any) error {
	return &CommandError{Message: fmt.Sprintf(format, args...)}
}

// UsageErrorf builds a recoverable CommandError carrying a usage line.
func UsageErrorf(usage, format string, args ...any) error {
	return &CommandError{Usage: usage, Message: fmt.Sprintf(format, args...)}
}

// IsRecoverable reports whether err is (or wraps) a CommandError.
func IsRecoverable(err error) bool {
	var ce *CommandError
	return errors.As(err, &ce)
}
