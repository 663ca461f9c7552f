/*
Package domain contains the core types shared across the conch shell.

It defines the two-variant error classification that drives the session
lifecycle, and the session status enum. This package is kept pure and free
of I/O so that every other package can depend on it without cycles.

# Error Classification

The shell distinguishes exactly two kinds of task failure:

  - CommandError: a recoverable failure a command body (or the argument
    binder) raises deliberately. It is logged and the session continues.
  - Everything else: treated as systemic. The session stops accepting new
    commands and winds down on the next input line.
*/
package domain
