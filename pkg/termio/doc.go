/*
Package termio provides the synchronized output channel a shell session
writes through.

Every write from a command task, the prompt, or a banner repaint goes
through one Channel, which holds an exclusive lock for the whole compound
write (erase + text + overlay + prompt redisplay). That lock is the only
mutual-exclusion primitive in the rendering path and is what keeps
concurrently logging tasks from interleaving bytes mid-line.

In interactive mode (both session streams are real terminals) the channel
uses carriage-return erasure and ANSI cursor movement so fresh output
appears above the prompt and any active banner lines. In non-interactive
mode it appends plain newline-terminated text with no control bytes at
all, so redirected output stays clean.
*/
package termio
