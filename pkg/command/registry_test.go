package command

import (
	"context"
	"testing"

	"github.com/conchshell/conch/pkg/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(ctx context.Context, args Args) error { return nil }

func TestRegistry_RegisterRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(New("inc", noop)))
	assert.Error(t, r.Register(New("inc", noop)))
	assert.Error(t, r.Register(New("", noop)))
	assert.Error(t, r.Register(New("two words", noop)))
}

func TestBind_UnknownCommandIsRecoverable(t *testing.T) {
	r := NewRegistry()
	_, err := r.Bind("nope")
	require.Error(t, err)
	assert.True(t, domain.IsRecoverable(err))
}

func TestBind_ZeroArgCommand(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(New("inc", noop)))

	call, err := r.Bind("inc")
	require.NoError(t, err)
	assert.Empty(t, call.Args)
}

func TestBind_ZeroArgCommandRejectsExtras(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(New("inc", noop)))

	_, err := r.Bind("inc 5")
	require.Error(t, err)
	assert.True(t, domain.IsRecoverable(err))
	assert.Contains(t, err.Error(), "unexpected argument")
	assert.Contains(t, err.Error(), "usage: inc")
}

func TestBind_TypedPositional(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(New("inc_by", noop, WithArgs(Int("n")))))

	call, err := r.Bind("inc_by 5")
	require.NoError(t, err)
	assert.Equal(t, 5, call.Args.Int("n"))
}

func TestBind_MalformedPositional(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(New("inc_by", noop, WithArgs(Int("n")))))

	_, err := r.Bind("inc_by abc")
	require.Error(t, err)
	assert.True(t, domain.IsRecoverable(err))
	assert.Contains(t, err.Error(), "usage: inc_by <n>")
	assert.Contains(t, err.Error(), `invalid value "abc"`)
}

func TestBind_MissingRequiredPositional(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(New("inc_by", noop, WithArgs(Int("n")))))

	_, err := r.Bind("inc_by")
	require.Error(t, err)
	assert.True(t, domain.IsRecoverable(err))
	assert.Contains(t, err.Error(), "missing required argument")
}

func TestBind_OptionalPositional(t *testing.T) {
	r := NewRegistry()
	cmd := New("greet", noop, WithArgs(String("name"), Optional(String("greeting"))))
	require.NoError(t, r.Register(cmd))

	call, err := r.Bind("greet world")
	require.NoError(t, err)
	assert.Equal(t, "world", call.Args.String("name"))
	assert.False(t, call.Args.Has("greeting"))

	call, err = r.Bind("greet world hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", call.Args.String("greeting"))
}

func TestBind_Flags(t *testing.T) {
	r := NewRegistry()
	cmd := New("alert", noop, WithFlags(func(fs *pflag.FlagSet) {
		fs.Int("count", 1, "number of alerts")
		fs.Bool("loud", false, "uppercase output")
	}))
	require.NoError(t, r.Register(cmd))

	call, err := r.Bind("alert --count 3 --loud")
	require.NoError(t, err)
	assert.Equal(t, 3, call.Args.Int("count"))
	assert.True(t, call.Args.Bool("loud"))

	// Defaults are present even when unset.
	call, err = r.Bind("alert")
	require.NoError(t, err)
	assert.Equal(t, 1, call.Args.Int("count"))
	assert.False(t, call.Args.Bool("loud"))
}

func TestBind_UnknownFlagIsRecoverable(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(New("inc", noop)))

	_, err := r.Bind("inc --bogus")
	require.Error(t, err)
	assert.True(t, domain.IsRecoverable(err))
}

func TestBind_HelpRequested(t *testing.T) {
	r := NewRegistry()
	cmd := New("inc_by", noop, WithArgs(Int("n")), WithFlags(func(fs *pflag.FlagSet) {
		fs.Bool("loud", false, "uppercase output")
	}))
	require.NoError(t, r.Register(cmd))

	_, err := r.Bind("inc_by -h")
	var help *HelpRequested
	require.ErrorAs(t, err, &help)
	assert.Contains(t, help.Text, "usage: inc_by [flags] <n>")
	assert.Contains(t, help.Text, "--loud")
}

func TestBind_FlagStateDoesNotLeakBetweenParses(t *testing.T) {
	r := NewRegistry()
	cmd := New("alert", noop, WithFlags(func(fs *pflag.FlagSet) {
		fs.Int("count", 1, "number of alerts")
	}))
	require.NoError(t, r.Register(cmd))

	call, err := r.Bind("alert --count 9")
	require.NoError(t, err)
	require.Equal(t, 9, call.Args.Int("count"))

	call, err = r.Bind("alert")
	require.NoError(t, err)
	assert.Equal(t, 1, call.Args.Int("count"))
}

func TestInvoke_RunsHandlerWithBoundArgs(t *testing.T) {
	r := NewRegistry()
	var got int
	cmd := New("inc_by", func(ctx context.Context, args Args) error {
		got = args.Int("n")
		return nil
	}, WithArgs(Int("n")))
	require.NoError(t, r.Register(cmd))

	call, err := r.Bind("inc_by 7")
	require.NoError(t, err)
	require.NoError(t, call.Invoke(t.Context()))
	assert.Equal(t, 7, got)
}

func TestArgs_Decode(t *testing.T) {
	args := Args{"n": 5, "label": "hi"}
	var out struct {
		N     int    `mapstructure:"n"`
		Label string `mapstructure:"label"`
	}
	require.NoError(t, args.Decode(&out))
	assert.Equal(t, 5, out.N)
	assert.Equal(t, "hi", out.Label)
}

func TestUsage_Rendering(t *testing.T) {
	cmd := New("greet", noop, WithArgs(String("name"), Optional(String("greeting"))))
	assert.Equal(t, "usage: greet <name> [greeting]", cmd.Usage())

	flagged := New("alert", noop, WithFlags(func(fs *pflag.FlagSet) {
		fs.Bool("loud", false, "")
	}))
	assert.Equal(t, "usage: alert [flags]", flagged.Usage())
}

func TestBind_EmptyLine(t *testing.T) {
	r := NewRegistry()
	_, err := r.Bind("   ")
	require.Error(t, err)
	assert.True(t, domain.IsRecoverable(err))
}
