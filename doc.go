/*
Package conch is an embeddable asynchronous interactive shell.

A Shell reads lines from a terminal, binds them to registered commands and
runs the command bodies on a cooperative scheduler, so a long-running
command never blocks the prompt. All terminal writes go through one
synchronized output channel, and transient status banners (progress bars,
spinners) repaint on a timer below the prompt without corrupting command
output.

# Concept

The session is three moving parts. The input pump blocks on reads so the
rest of the shell never does. The scheduler steps exactly one command at a
time; a command yields control at explicit suspension points and resumes
where it left off. The output channel owns the terminal: every write
erases the prompt row, emits the message, redraws the banner stack and
redisplays the prompt as one atomic sequence.

Commands fail in one of two ways. A domain.CommandError is recoverable:
the message is shown and the shell keeps accepting input. Any other error
is fatal: the shell reports it, stops accepting, and ends the session on
the next line read.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/conchshell/conch"
		"github.com/conchshell/conch/pkg/command"
	)

	func main() {
		sh := conch.New(conch.WithPrompt("demo> "))

		err := sh.Register(command.New("greet", func(ctx context.Context, args command.Args) error {
			sh.Printf("hello, %s", args.String("name"))
			return nil
		}, command.WithArgs(command.String("name"))))
		if err != nil {
			log.Fatal(err)
		}

		if err := sh.Run(context.Background()); err != nil {
			log.Fatal(err)
		}
	}

The session ends at end of input, on a line containing only "EOF", or
after an unrecoverable command error. Run drains in-flight commands and
banners before writing the exit message.
*/
package conch
