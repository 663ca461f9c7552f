package command

import (
	"context"

	"github.com/spf13/pflag"
)

// Handler is a command body. It runs as a scheduled task: it may suspend
// at wait points and it reports failure through its error, either a
// domain.CommandError to recover or anything else to stop the session.
type Handler func(ctx context.Context, args Args) error

// Command is an immutable binding of a name to an argument specification
// and a handler. Build one with New; register it before the shell runs.
type Command struct {
	name    string
	summary string
	spec    *Spec
	handler Handler
}

// Option configures a Command at construction.
type Option func(*Command)

// WithSummary sets the one-line description shown by help output.
func WithSummary(summary string) Option {
	return func(c *Command) {
		c.summary = summary
	}
}

// WithArgs declares the positional arguments, in order.
func WithArgs(positionals ...Positional) Option {
	return func(c *Command) {
		c.spec.positionals = append(c.spec.positionals, positionals...)
	}
}

// WithFlags registers flag definitions. The function is invoked with a
// fresh FlagSet for every parse, so flag state never leaks between
// invocations of the same command.
func WithFlags(register func(fs *pflag.FlagSet)) Option {
	return func(c *Command) {
		c.spec.flagDefs = append(c.spec.flagDefs, register)
	}
}

// New creates a Command. The name must be a single word; it is matched
// against the first token of each input line.
func New(name string, handler Handler, opts ...Option) *Command {
	c := &Command{
		name:    name,
		handler: handler,
		spec:    &Spec{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.spec.name = name
	return c
}

// Name returns the registration name.
func (c *Command) Name() string { return c.name }

// Summary returns the one-line description, possibly empty.
func (c *Command) Summary() string { return c.summary }

// Usage returns the one-line usage string.
func (c *Command) Usage() string { return c.spec.usage() }

// Call is one bound invocation: a command plus its parsed arguments.
type Call struct {
	Command *Command
	Args    Args
}

// Invoke runs the command body with the bound arguments.
func (c *Call) Invoke(ctx context.Context) error {
	return c.Command.handler(ctx, c.Args)
}
