/*
Package sched implements the cooperative task scheduler that backs a shell
session.

A single loop goroutine steps one task at a time: a task body runs on its
own goroutine but holds the loop's attention until it returns or suspends
at an explicit wait point (Sleep, Yield, Await). Two task bodies therefore
never execute concurrently, task start order is the submission order, and
finalizers run on the loop goroutine one at a time. Submit is the only
operation that may be called from other goroutines; everything else the
loop owns.

This is the synchronization seam between the blocking input reader and the
command bodies: the reader hands work over through Submit and never touches
loop state directly.
*/
package sched
