/*
Package observability exposes prometheus metrics for a shell session:
lines read, commands by outcome, and in-flight task count.

The shell mutates metrics only from its scheduler goroutine, so the
counters observe the same serialization as the session itself.
*/
package observability
