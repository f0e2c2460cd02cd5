package shell

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrLaunch marks failures to start the launcher itself.
	ErrLaunch = errors.New("launch failure")
	// ErrCommand marks commands that ran and exited non-zero.
	ErrCommand = errors.New("command failure")
)

// LaunchError reports that the outer launcher could not be spawned.
type LaunchError struct {
	Launcher string
	Err      error
}

func (e *LaunchError) Error() string {
	if e.Launcher == "" {
		return fmt.Sprintf("Falha ao executar comando: %v", e.Err)
	}
	return fmt.Sprintf("Falha ao executar comando: %s: %v", e.Launcher, e.Err)
}

func (e *LaunchError) Unwrap() []error { return []error{ErrLaunch, e.Err} }

// CommandError reports a non-zero exit. Its text is the captured stderr,
// prefixed when the run timed out or was cancelled.
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	var reason string
	switch {
	case errors.Is(e.Err, context.DeadlineExceeded):
		reason = "comando excedeu o tempo limite"
	case errors.Is(e.Err, context.Canceled):
		reason = "comando cancelado"
	}

	switch {
	case reason != "" && e.Stderr != "":
		return reason + ": " + e.Stderr
	case reason != "":
		return fmt.Sprintf("%s (status %d)", reason, e.ExitCode)
	case e.Stderr == "":
		return fmt.Sprintf("comando terminou com status %d", e.ExitCode)
	}
	return e.Stderr
}

func (e *CommandError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCommand}
	}
	return []error{ErrCommand, e.Err}
}
