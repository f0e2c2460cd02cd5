package collector

import (
	"context"
	"errors"
)

type fakeRunner struct {
	output   string
	err      error
	commands []string
}

func (f *fakeRunner) Run(_ context.Context, command string) (string, error) {
	f.commands = append(f.commands, command)
	return f.output, f.err
}

var errShell = errors.New("wsl: distribution not found")
