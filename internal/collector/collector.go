// Package collector queries the real WSL process table through a shell
// runner and parses the text it prints.
package collector

import (
	"context"

	"github.com/prabalesh/wsltop/internal/logging"
)

// Runner executes a command string and returns its standard output.
// *shell.Executor satisfies it.
type Runner interface {
	Run(ctx context.Context, command string) (string, error)
}

type ProcessCollector struct {
	runner Runner
	log    logging.Logger
}

func NewProcessCollector(runner Runner, log logging.Logger) *ProcessCollector {
	if log == nil {
		log = logging.Discard
	}
	return &ProcessCollector{
		runner: runner,
		log:    log,
	}
}
