package conch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/term"

	"github.com/conchshell/conch/internal/logging"
	"github.com/conchshell/conch/internal/sched"
	"github.com/conchshell/conch/pkg/command"
	"github.com/conchshell/conch/pkg/domain"
	"github.com/conchshell/conch/pkg/observability"
	"github.com/conchshell/conch/pkg/termio"
)

// endOfInputWord ends the session when typed on its own line, mirroring
// the end-of-stream condition for terminals that cannot send one.
const endOfInputWord = "EOF"

// exitMessage is the last line the shell writes, after all command output.
const exitMessage = "Exiting the shell..."

// Shell is one interactive session: a blocking read loop feeding a
// cooperative scheduler, with all terminal writes funneled through a
// synchronized output channel. A Shell runs once and is not restartable.
type Shell struct {
	registry *command.Registry
	logger   *slog.Logger
	metrics  *observability.Metrics
	input    io.Reader
	output   io.Writer
	prompt   string
	termOpts []termio.Option

	channel *termio.Channel
	width   int
	loop    *sched.Loop

	// accepting is the one value the input goroutine reads; it flips to
	// false when a command fails unrecoverably.
	accepting atomic.Bool

	mu          sync.Mutex
	status      domain.SessionStatus
	banners     []*BannerHandle
	overlayRows int
}

// Option configures a Shell.
type Option func(*Shell)

// WithPrompt sets the interactive prompt. Default "> ".
func WithPrompt(prompt string) Option {
	return func(s *Shell) { s.prompt = prompt }
}

// WithInput sets the line source. Default os.Stdin.
func WithInput(r io.Reader) Option {
	return func(s *Shell) {
		if r != nil {
			s.input = r
		}
	}
}

// WithOutput sets the terminal sink. Default os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Shell) {
		if w != nil {
			s.output = w
		}
	}
}

// WithLogger sets the internal debug logger. Default no-op.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the session metrics. Default none.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Shell) { s.metrics = m }
}

// WithRegistry replaces the command registry, allowing one registry to be
// shared across sessions.
func WithRegistry(reg *command.Registry) Option {
	return func(s *Shell) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithTerminalOptions forwards options to the output channel, e.g. to pin
// the width or force interactive rendering against a buffer.
func WithTerminalOptions(opts ...termio.Option) Option {
	return func(s *Shell) { s.termOpts = append(s.termOpts, opts...) }
}

// New creates a Shell. The session is interactive only when both the
// input and the output are terminals (or when forced via
// WithTerminalOptions).
func New(opts ...Option) *Shell {
	s := &Shell{
		registry: command.NewRegistry(),
		logger:   logging.NewNop(),
		input:    os.Stdin,
		output:   os.Stdout,
		prompt:   "> ",
		status:   domain.StatusIdle,
	}
	for _, opt := range opts {
		opt(s)
	}

	termOpts := []termio.Option{termio.WithPrompt(s.prompt)}
	if !inputIsTerminal(s.input) {
		termOpts = append(termOpts, termio.WithInteractive(false))
	}
	termOpts = append(termOpts, s.termOpts...)
	s.channel = termio.New(s.output, termOpts...)
	s.width = s.channel.Width()
	s.channel.SetOverlay(s.overlayLines)
	return s
}

// Register adds commands to the session registry.
func (s *Shell) Register(cmds ...*command.Command) error {
	for _, cmd := range cmds {
		if err := s.registry.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Interactive reports whether cursor-control rendering is in use.
func (s *Shell) Interactive() bool {
	return s.channel.Interactive()
}

// Status returns the current lifecycle state.
func (s *Shell) Status() domain.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Print writes one line of command output through the output channel.
func (s *Shell) Print(text string) {
	s.channel.Write(text)
}

// Printf formats one line of command output.
func (s *Shell) Printf(format string, args ...any) {
	s.channel.Write(fmt.Sprintf(format, args...))
}

type readResult struct {
	text string
	err  error
}

// Run executes the session until end of input, an `EOF` line, a line read
// after an unrecoverable error, or ctx cancellation. It drains in-flight
// commands, finalizers and banners before writing the exit message.
func (s *Shell) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.status != domain.StatusIdle {
		status := s.status
		s.mu.Unlock()
		return fmt.Errorf("shell already ran (status %s)", status)
	}
	s.status = domain.StatusAccepting
	s.loop = sched.New(ctx, s.logger)
	s.mu.Unlock()

	go s.loop.Run()
	s.accepting.Store(true)
	s.logger.Debug("shell started", "interactive", s.channel.Interactive())

	lines := make(chan readResult)
	pumpStop := make(chan struct{})
	defer close(pumpStop)
	go s.pump(lines, pumpStop)

	s.channel.Prompt()

	var runErr error
loop:
	for {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break loop
		case res, ok := <-lines:
			if !ok {
				break loop
			}
			if res.err != nil {
				s.logger.Warn("input read failed", "err", res.err)
				break loop
			}
			if !s.handleLine(res.text) {
				break loop
			}
			s.channel.Prompt()
		}
	}

	s.accepting.Store(false)
	s.setStatus(domain.StatusDraining)
	s.loop.Shutdown()
	s.loop.Wait()
	s.repaintOverlay()
	s.channel.Close(exitMessage)
	s.setStatus(domain.StatusStopped)
	s.logger.Debug("shell stopped", "err", runErr)
	return runErr
}

// pump reads lines on its own goroutine so a blocked read never stalls
// scheduling or output.
func (s *Shell) pump(out chan<- readResult, stop <-chan struct{}) {
	reader := bufio.NewReader(s.input)
	for {
		text, err := reader.ReadString('\n')
		if text != "" {
			select {
			case out <- readResult{text: text}:
			case <-stop:
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				select {
				case out <- readResult{err: err}:
				case <-stop:
				}
			}
			close(out)
			return
		}
	}
}

// handleLine processes one raw input line. It reports false when the
// session should stop reading.
func (s *Shell) handleLine(raw string) bool {
	s.metrics.ObserveLine()

	if !s.accepting.Load() {
		// A fatal error already asked the user to press ENTER; any line
		// consumed now, even an empty one, ends the session.
		return false
	}

	line, err := SanitizeInput(strings.TrimRight(raw, "\r\n"))
	if err != nil {
		s.channel.Error(fmt.Sprintf("Error: %v. Please try again.", err))
		return true
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	if line == endOfInputWord {
		return false
	}

	call, err := s.registry.Bind(line)
	if err != nil {
		s.report(err)
		return true
	}

	name := call.Command.Name()
	if !s.loop.Submit(name, call.Invoke, s.finalizer(name)) {
		return false
	}
	s.metrics.ObserveScheduled()
	s.logger.Debug("command scheduled", "command", name)
	return true
}

// report surfaces a bind failure. Help requests and usage errors are both
// recoverable; the session keeps accepting.
func (s *Shell) report(err error) {
	var help *command.HelpRequested
	if errors.As(err, &help) {
		s.channel.Help(help.Text)
		return
	}
	s.channel.Error(err.Error())
}

// finalizer classifies a finished command. Recoverable errors are
// reported and the session continues; anything else stops admission and
// asks the user to press ENTER, so the read loop notices on its next
// blocking read.
func (s *Shell) finalizer(name string) sched.Finalizer {
	return func(err error) {
		switch {
		case err == nil:
			s.metrics.ObserveFinalized(observability.OutcomeOK)
		case domain.IsRecoverable(err):
			s.channel.Error(err.Error())
			s.metrics.ObserveFinalized(observability.OutcomeRecoverable)
		case errors.Is(err, context.Canceled):
			// The shutdown cancelled a suspended command; not a failure.
			s.metrics.ObserveFinalized(observability.OutcomeRecoverable)
		default:
			s.accepting.Store(false)
			s.channel.Error(fmt.Sprintf("An unrecoverable error has occurred: %v", err))
			s.channel.Write("Press ENTER to quit.")
			s.metrics.ObserveFinalized(observability.OutcomeFatal)
		}
		s.logger.Debug("command finalized", "command", name, "err", err)
	}
}

func (s *Shell) setStatus(status domain.SessionStatus) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

func inputIsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
