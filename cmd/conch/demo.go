package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/conchshell/conch"
	"github.com/conchshell/conch/internal/config"
	"github.com/conchshell/conch/pkg/banner"
	"github.com/conchshell/conch/pkg/command"
	"github.com/conchshell/conch/pkg/domain"
)

// registerDemoCommands wires the demo command set into the shell.
func registerDemoCommands(shell *conch.Shell, cfg config.Config) error {
	reg := commandList(shell, cfg)
	return shell.Register(reg...)
}

func commandList(shell *conch.Shell, cfg config.Config) []*command.Command {
	accent := accentStyle(cfg.Color && shell.Interactive())

	echo := command.New("echo", func(ctx context.Context, args command.Args) error {
		text := args.String("text")
		if args.Bool("upper") {
			text = strings.ToUpper(text)
		}
		shell.Print(text)
		return nil
	},
		command.WithSummary("print a line of text"),
		command.WithArgs(command.String("text")),
		command.WithFlags(func(fs *pflag.FlagSet) {
			fs.Bool("upper", false, "uppercase the text")
		}),
	)

	count := command.New("count", func(ctx context.Context, args command.Args) error {
		n := args.Int("n")
		if n <= 0 {
			return domain.Errorf("count must be positive, got %d", n)
		}
		interval := args.Duration("interval")
		for i := 1; i <= n; i++ {
			shell.Printf("%d", i)
			if err := conch.Sleep(ctx, interval); err != nil {
				return nil
			}
		}
		return nil
	},
		command.WithSummary("count upwards, yielding between numbers"),
		command.WithArgs(command.Int("n")),
		command.WithFlags(func(fs *pflag.FlagSet) {
			fs.Duration("interval", 500*time.Millisecond, "delay between numbers")
		}),
	)

	progress := command.New("progress", func(ctx context.Context, args command.Args) error {
		total := time.Duration(args.Float("seconds") * float64(time.Second))
		if total <= 0 {
			return domain.Errorf("seconds must be positive")
		}
		bar := banner.NewProgressBar("working", banner.WithProgressStyle(accent))
		h, err := shell.Banner(bar, cfg.BannerRefresh)
		if err != nil {
			return err
		}
		const steps = 50
		for i := 1; i <= steps; i++ {
			if err := conch.Sleep(ctx, total/steps); err != nil {
				break
			}
			bar.SetProgress(float64(i) / steps)
		}
		if err := h.Stop(ctx); err != nil {
			return err
		}
		shell.Print("done")
		return nil
	},
		command.WithSummary("run a progress bar below the prompt"),
		command.WithArgs(command.Float("seconds")),
	)

	spin := command.New("spin", func(ctx context.Context, args command.Args) error {
		total := time.Duration(args.Float("seconds") * float64(time.Second))
		if total <= 0 {
			return domain.Errorf("seconds must be positive")
		}
		h, err := shell.Banner(banner.NewBarSpinner("spinning", banner.WithSpinnerStyle(accent)), cfg.BannerRefresh)
		if err != nil {
			return err
		}
		if err := conch.Sleep(ctx, total); err == nil {
			shell.Print("done")
		}
		return h.Stop(ctx)
	},
		command.WithSummary("run a spinner below the prompt"),
		command.WithArgs(command.Float("seconds")),
	)

	drift := command.New("drift", func(ctx context.Context, args command.Args) error {
		total := time.Duration(args.Float("seconds") * float64(time.Second))
		if total <= 0 {
			return domain.Errorf("seconds must be positive")
		}
		bar := banner.NewTwoWayBar("drift", banner.WithTwoWayStyle(accent))
		h, err := shell.Banner(bar, cfg.BannerRefresh)
		if err != nil {
			return err
		}
		// Sweep from the left extreme to the right one.
		const steps = 40
		for i := 0; i <= steps; i++ {
			bar.SetProgress(-1 + 2*float64(i)/steps)
			if err := conch.Sleep(ctx, total/steps); err != nil {
				break
			}
		}
		return h.Stop(ctx)
	},
		command.WithSummary("sweep a two-way bar from left to right"),
		command.WithArgs(command.Float("seconds")),
	)

	fail := command.New("fail", func(ctx context.Context, args command.Args) error {
		return domain.Errorf("this command always fails, but gently")
	}, command.WithSummary("return a recoverable error"))

	crash := command.New("crash", func(ctx context.Context, args command.Args) error {
		return errors.New("simulated unrecoverable failure")
	}, command.WithSummary("return an unrecoverable error and end the session"))

	cmds := []*command.Command{echo, count, progress, spin, drift, fail, crash}
	return append(cmds, helpCommand(shell, cmds))
}

// helpCommand renders the command list as markdown, through glamour when
// the session is interactive.
func helpCommand(shell *conch.Shell, cmds []*command.Command) *command.Command {
	return command.New("help", func(ctx context.Context, args command.Args) error {
		var b strings.Builder
		b.WriteString("# Commands\n\n")
		for _, c := range cmds {
			fmt.Fprintf(&b, "- **%s**: %s\n", c.Name(), c.Summary())
		}
		fmt.Fprintf(&b, "- **help**: show this list\n")
		b.WriteString("\nType `EOF` to leave the shell.\n")

		if !shell.Interactive() {
			shell.Print(strings.TrimRight(b.String(), "\n"))
			return nil
		}
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
		if err != nil {
			return fmt.Errorf("help renderer: %w", err)
		}
		rendered, err := r.Render(b.String())
		if err != nil {
			return fmt.Errorf("help renderer: %w", err)
		}
		shell.Print(strings.TrimRight(rendered, "\n"))
		return nil
	}, command.WithSummary("show this list"))
}

// accentStyle returns the banner highlight style, or a pass-through when
// color is disabled.
func accentStyle(color bool) banner.Style {
	if !color {
		return nil
	}
	out := termenv.NewOutput(os.Stdout)
	return func(s string) string {
		return out.String(s).Foreground(out.Color("6")).String()
	}
}
