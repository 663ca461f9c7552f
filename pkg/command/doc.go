/*
Package command implements the binder that turns raw input lines into
ready-to-run command invocations.

A Command couples a unique name with an argument specification and an
asynchronous handler. The Registry tokenizes a line, matches the leading
word against registered names, parses flags with pflag and converts typed
positionals, and hands back a bound Call. Every parse failure (unknown
command, unknown flag, missing required value, malformed value) is a
recoverable domain.CommandError carrying the command's usage line, so the
shell logs it and keeps accepting input instead of terminating.

Commands with zero declared arguments travel the exact same path with an
empty specification, which keeps usage and help output uniform.
*/
package command
