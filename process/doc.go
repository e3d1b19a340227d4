// Package process spawns and supervises child processes. It is the
// low-level collaborator behind the pipe package: Start launches a child
// with its standard output captured in an OS pipe, and the returned Handle
// exposes that stream for hand-off to a downstream stage's standard input.
package process
