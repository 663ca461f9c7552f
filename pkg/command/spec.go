package command

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/conchshell/conch/pkg/domain"
	"github.com/spf13/pflag"
)

// Kind is the value type of a positional argument.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

// Positional describes one positional argument.
type Positional struct {
	Name     string
	Kind     Kind
	Required bool
}

// String declares a required string positional.
func String(name string) Positional { return Positional{Name: name, Kind: KindString, Required: true} }

// Int declares a required integer positional.
func Int(name string) Positional { return Positional{Name: name, Kind: KindInt, Required: true} }

// Float declares a required float positional.
func Float(name string) Positional { return Positional{Name: name, Kind: KindFloat, Required: true} }

// Bool declares a required boolean positional.
func Bool(name string) Positional { return Positional{Name: name, Kind: KindBool, Required: true} }

// Optional marks a positional as optional. Optional positionals must
// trail the required ones.
func Optional(p Positional) Positional {
	p.Required = false
	return p
}

// Spec is a command's argument specification: ordered positionals plus
// pflag-backed flag definitions.
type Spec struct {
	name        string
	positionals []Positional
	flagDefs    []func(fs *pflag.FlagSet)
}

// HelpRequested is returned by Parse when the user asked for -h/--help.
// It is informational, not a failure; the shell routes Text to the help
// channel and continues.
type HelpRequested struct {
	Text string
}

// Error implements the error interface.
func (h *HelpRequested) Error() string { return h.Text }

// Parse applies the specification to the tokens following the command
// name. All failures are recoverable domain errors carrying the usage
// line.
func (s *Spec) Parse(tokens []string) (Args, error) {
	fs := pflag.NewFlagSet(s.name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	help := fs.BoolP("help", "h", false, "show help for "+s.name)
	for _, def := range s.flagDefs {
		def(fs)
	}

	if err := fs.Parse(tokens); err != nil {
		return nil, domain.UsageErrorf(s.usage(), "%v", err)
	}
	if *help {
		return nil, &HelpRequested{Text: s.helpText(fs)}
	}

	args := make(Args)
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "help" {
			return
		}
		args[f.Name] = flagValue(fs, f)
	})

	rest := fs.Args()
	for _, p := range s.positionals {
		if len(rest) == 0 {
			if p.Required {
				return nil, domain.UsageErrorf(s.usage(), "missing required argument %q", p.Name)
			}
			break
		}
		v, err := convert(rest[0], p.Kind)
		if err != nil {
			return nil, domain.UsageErrorf(s.usage(), "invalid value %q for argument %q: %v", rest[0], p.Name, err)
		}
		args[p.Name] = v
		rest = rest[1:]
	}
	if len(rest) > 0 {
		return nil, domain.UsageErrorf(s.usage(), "unexpected argument %q", rest[0])
	}
	return args, nil
}

// usage renders the one-line usage string.
func (s *Spec) usage() string {
	var b strings.Builder
	b.WriteString("usage: ")
	b.WriteString(s.name)
	if len(s.flagDefs) > 0 {
		b.WriteString(" [flags]")
	}
	for _, p := range s.positionals {
		if p.Required {
			fmt.Fprintf(&b, " <%s>", p.Name)
		} else {
			fmt.Fprintf(&b, " [%s]", p.Name)
		}
	}
	return b.String()
}

// helpText renders the full help block: usage line plus flag table.
func (s *Spec) helpText(fs *pflag.FlagSet) string {
	text := s.usage()
	if usages := strings.TrimRight(fs.FlagUsages(), "\n"); usages != "" {
		text += "\n" + usages
	}
	return text
}

func convert(raw string, kind Kind) (any, error) {
	switch kind {
	case KindInt:
		return strconv.Atoi(raw)
	case KindFloat:
		return strconv.ParseFloat(raw, 64)
	case KindBool:
		return strconv.ParseBool(raw)
	default:
		return raw, nil
	}
}

// flagValue extracts a parsed flag as its native Go type where pflag
// knows one, falling back to the string form.
func flagValue(fs *pflag.FlagSet, f *pflag.Flag) any {
	switch f.Value.Type() {
	case "bool":
		v, _ := fs.GetBool(f.Name)
		return v
	case "int":
		v, _ := fs.GetInt(f.Name)
		return v
	case "float64":
		v, _ := fs.GetFloat64(f.Name)
		return v
	case "duration":
		v, _ := fs.GetDuration(f.Name)
		return v
	case "string":
		v, _ := fs.GetString(f.Name)
		return v
	default:
		return f.Value.String()
	}
}
