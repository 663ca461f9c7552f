package command

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Args holds the parsed arguments of one invocation, keyed by the
// positional or flag name. Values carry their declared types.
type Args map[string]any

// String returns the named argument as a string.
func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

// Int returns the named argument as an int.
func (a Args) Int(name string) int {
	v, _ := a[name].(int)
	return v
}

// Float returns the named argument as a float64.
func (a Args) Float(name string) float64 {
	v, _ := a[name].(float64)
	return v
}

// Bool returns the named argument as a bool.
func (a Args) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

// Duration returns the named argument as a time.Duration.
func (a Args) Duration(name string) time.Duration {
	v, _ := a[name].(time.Duration)
	return v
}

// Has reports whether the argument was provided (or has a flag default).
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Decode maps the arguments onto a struct using mapstructure tags, for
// handlers that prefer a typed view over name-by-name getters.
func (a Args) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("building args decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(a)); err != nil {
		return fmt.Errorf("decoding args: %w", err)
	}
	return nil
}
