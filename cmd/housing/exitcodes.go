package main

import "fmt"

// Exit codes for the housing CLI.
const (
	ExitOK          = 0 // Success.
	ExitInvalidArgs = 1 // Invalid arguments, preset, or facet value.
	ExitLoadFailure = 2 // Dataset missing, unreadable, or wrong schema.
	ExitRenderError = 3 // Output or chart files could not be written.
)

// exitCodeError carries a process exit code up to main.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

func exitErr(code int, format string, args ...any) error {
	return &exitCodeError{code: code, msg: fmt.Sprintf(format, args...)}
}
