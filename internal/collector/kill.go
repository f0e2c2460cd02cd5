package collector

import (
	"context"
	"fmt"
)

// KillError wraps a failed kill with the pid it targeted.
type KillError struct {
	PID uint32
	Err error
}

func (e *KillError) Error() string {
	return fmt.Sprintf("Erro ao matar processo Linux %d: %v", e.PID, e.Err)
}

func (e *KillError) Unwrap() error { return e.Err }

// KillCommand formats the forceful termination command for pid.
func KillCommand(pid uint32) string {
	return fmt.Sprintf("kill -9 %d", pid)
}

// KillProcess sends SIGKILL to pid inside WSL. Nothing checks that pid
// exists beforehand.
func (c *ProcessCollector) KillProcess(ctx context.Context, pid uint32) error {
	if _, err := c.runner.Run(ctx, KillCommand(pid)); err != nil {
		return &KillError{PID: pid, Err: err}
	}
	c.log.Infoln("killed", pid)
	return nil
}
