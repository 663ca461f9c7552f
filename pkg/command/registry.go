package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/conchshell/conch/pkg/domain"
)

// Registry is the command table built at shell construction. It is not
// mutated once the shell starts reading input.
type Registry struct {
	commands map[string]*Command
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// Register adds a command. Registering an empty or duplicate name is a
// programming error and fails loudly.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil || cmd.name == "" {
		return fmt.Errorf("command must have a name")
	}
	if strings.ContainsAny(cmd.name, " \t") {
		return fmt.Errorf("command name %q must be a single word", cmd.name)
	}
	if _, exists := r.commands[cmd.name]; exists {
		return fmt.Errorf("command %q already registered", cmd.name)
	}
	r.commands[cmd.name] = cmd
	return nil
}

// Get returns the named command, or nil.
func (r *Registry) Get(name string) *Command {
	return r.commands[name]
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bind converts a raw input line into a bound Call. The line must be
// non-empty. Failures are recoverable: unknown commands and parse errors
// come back as domain.CommandError (or HelpRequested for -h).
func (r *Registry) Bind(line string) (*Call, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, domain.Errorf("empty command line")
	}
	cmd := r.commands[tokens[0]]
	if cmd == nil {
		return nil, domain.Errorf("unknown command: %q", tokens[0])
	}
	args, err := cmd.spec.Parse(tokens[1:])
	if err != nil {
		return nil, err
	}
	return &Call{Command: cmd, Args: args}, nil
}
